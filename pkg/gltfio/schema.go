package gltfio

// JSON schema structs mirroring the glTF 2.0 asset layout. Index-valued
// fields use *int so that "absent" and "index 0" stay distinguishable.

type assetJSON struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
	Copyright string `json:"copyright,omitempty"`
}

type documentJSON struct {
	Asset              assetJSON        `json:"asset"`
	ExtensionsUsed     []string         `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string         `json:"extensionsRequired,omitempty"`
	Scene              *int             `json:"scene,omitempty"`
	Scenes             []sceneJSON      `json:"scenes,omitempty"`
	Nodes              []nodeJSON       `json:"nodes,omitempty"`
	Meshes             []meshJSON       `json:"meshes,omitempty"`
	Materials          []materialJSON   `json:"materials,omitempty"`
	Textures           []textureJSON    `json:"textures,omitempty"`
	Images             []imageJSON      `json:"images,omitempty"`
	Samplers           []samplerJSON    `json:"samplers,omitempty"`
	Accessors          []accessorJSON   `json:"accessors,omitempty"`
	BufferViews        []bufferViewJSON `json:"bufferViews,omitempty"`
	Buffers            []bufferJSON     `json:"buffers,omitempty"`
	Animations         []animationJSON  `json:"animations,omitempty"`
	Skins              []skinJSON       `json:"skins,omitempty"`
	Cameras            []cameraJSON     `json:"cameras,omitempty"`
}

type sceneJSON struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

type nodeJSON struct {
	Name        string      `json:"name,omitempty"`
	Children    []int       `json:"children,omitempty"`
	Mesh        *int        `json:"mesh,omitempty"`
	Camera      *int        `json:"camera,omitempty"`
	Skin        *int        `json:"skin,omitempty"`
	Translation *[3]float32 `json:"translation,omitempty"`
	Rotation    *[4]float32 `json:"rotation,omitempty"`
	Scale       *[3]float32 `json:"scale,omitempty"`
	Weights     []float32   `json:"weights,omitempty"`
}

type meshJSON struct {
	Name       string          `json:"name,omitempty"`
	Primitives []primitiveJSON `json:"primitives"`
	Weights    []float32       `json:"weights,omitempty"`
}

type primitiveJSON struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

type materialJSON struct {
	Name                 string          `json:"name,omitempty"`
	PBRMetallicRoughness *pbrJSON        `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *normalJSON     `json:"normalTexture,omitempty"`
	OcclusionTexture     *occlusionJSON  `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *textureRefJSON `json:"emissiveTexture,omitempty"`
	EmissiveFactor       *[3]float32     `json:"emissiveFactor,omitempty"`
	AlphaMode            string          `json:"alphaMode,omitempty"`
	AlphaCutoff          *float32        `json:"alphaCutoff,omitempty"`
	DoubleSided          bool            `json:"doubleSided,omitempty"`
}

type pbrJSON struct {
	BaseColorFactor          *[4]float32     `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *textureRefJSON `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32        `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float32        `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *textureRefJSON `json:"metallicRoughnessTexture,omitempty"`
}

type textureRefJSON struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

type normalJSON struct {
	textureRefJSON
	Scale *float32 `json:"scale,omitempty"`
}

type occlusionJSON struct {
	textureRefJSON
	Strength *float32 `json:"strength,omitempty"`
}

type textureJSON struct {
	Name    string `json:"name,omitempty"`
	Source  *int   `json:"source,omitempty"`
	Sampler *int   `json:"sampler,omitempty"`
}

type imageJSON struct {
	Name     string `json:"name,omitempty"`
	URI      string `json:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type samplerJSON struct {
	MagFilter *int `json:"magFilter,omitempty"`
	MinFilter *int `json:"minFilter,omitempty"`
	WrapS     *int `json:"wrapS,omitempty"`
	WrapT     *int `json:"wrapT,omitempty"`
}

type accessorJSON struct {
	Name          string    `json:"name,omitempty"`
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type bufferViewJSON struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
	Target     *int `json:"target,omitempty"`
}

type bufferJSON struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

type animationJSON struct {
	Name     string            `json:"name,omitempty"`
	Channels []animChannelJSON `json:"channels"`
	Samplers []animSamplerJSON `json:"samplers"`
}

type animChannelJSON struct {
	Sampler int            `json:"sampler"`
	Target  animTargetJSON `json:"target"`
}

type animTargetJSON struct {
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
}

type animSamplerJSON struct {
	Input         int    `json:"input"`
	Interpolation string `json:"interpolation,omitempty"`
	Output        int    `json:"output"`
}

type skinJSON struct {
	Name                string `json:"name,omitempty"`
	InverseBindMatrices *int   `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int   `json:"skeleton,omitempty"`
	Joints              []int  `json:"joints"`
}

type cameraJSON struct {
	Name         string            `json:"name,omitempty"`
	Type         string            `json:"type"`
	Perspective  *perspectiveJSON  `json:"perspective,omitempty"`
	Orthographic *orthographicJSON `json:"orthographic,omitempty"`
}

type perspectiveJSON struct {
	AspectRatio *float32 `json:"aspectRatio,omitempty"`
	YFov        float32  `json:"yfov"`
	ZNear       float32  `json:"znear"`
	ZFar        *float32 `json:"zfar,omitempty"`
}

type orthographicJSON struct {
	XMag  float32 `json:"xmag"`
	YMag  float32 `json:"ymag"`
	ZNear float32 `json:"znear"`
	ZFar  float32 `json:"zfar"`
}
