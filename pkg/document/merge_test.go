package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRig assembles a small but fully wired document: a default scene with
// a two-node hierarchy, an indexed triangle mesh with a textured material,
// and a rotation animation on the child node.
func buildRig(t *testing.T) *Document {
	t.Helper()
	d := NewDocument()
	d.Root().SetGenerator("gltfkit-test")

	buf := d.CreateBuffer("bin").SetURI("rig.bin")

	pos := d.CreateAccessor("positions").
		SetElementType(ElementVec3).
		SetComponentType(ComponentFloat).
		SetFloats([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, pos.SetBuffer(buf))

	idx := d.CreateAccessor("indices").
		SetComponentType(ComponentUnsignedShort).
		SetUints([]uint32{0, 1, 2})
	require.NoError(t, idx.SetBuffer(buf))

	tex := d.CreateTexture("albedo").SetURI("albedo.png")
	mat := d.CreateMaterial("matte").SetRoughnessFactor(0.8)
	require.NoError(t, mat.SetBaseColorTexture(tex))

	prim := d.CreatePrimitive()
	require.NoError(t, prim.SetAttribute("POSITION", pos))
	require.NoError(t, prim.SetIndices(idx))
	require.NoError(t, prim.SetMaterial(mat))

	mesh := d.CreateMesh("tri")
	require.NoError(t, mesh.AddPrimitive(prim))

	parent := d.CreateNode("parent")
	child := d.CreateNode("child").SetTranslation([3]float32{0, 1, 0})
	require.NoError(t, parent.AddChild(child))
	require.NoError(t, child.SetMesh(mesh))

	scene := d.CreateScene("main")
	require.NoError(t, scene.AddChild(parent))
	require.NoError(t, d.Root().SetDefaultScene(scene))

	times := d.CreateAccessor("times").SetFloats([]float32{0, 1})
	rots := d.CreateAccessor("rotations").
		SetElementType(ElementVec4).
		SetFloats([]float32{0, 0, 0, 1, 0, 0.7071, 0, 0.7071})
	sampler := d.CreateAnimationSampler()
	require.NoError(t, sampler.SetInput(times))
	require.NoError(t, sampler.SetOutput(rots))
	channel := d.CreateAnimationChannel()
	channel.SetTargetPath(PathRotation)
	require.NoError(t, channel.SetTargetNode(child))
	require.NoError(t, channel.SetSampler(sampler))
	anim := d.CreateAnimation("spin")
	require.NoError(t, anim.AddChannel(channel))
	require.NoError(t, anim.AddSampler(sampler))

	d.CreateExtension("KHR_materials_unlit")
	return d
}

func TestCloneIsStructurallyEqual(t *testing.T) {
	src := buildRig(t)
	dst, err := src.Clone()
	require.NoError(t, err)

	assert.True(t, src.Root().Equals(dst.Root()))
	assert.Equal(t, "gltfkit-test", dst.Root().Generator())
	assert.Equal(t, len(src.Root().ListNodes()), len(dst.Root().ListNodes()))

	// Every participant is fresh; nothing is shared with the source.
	for _, n := range dst.Root().ListNodes() {
		assert.Same(t, dst, n.Document())
		assert.Nil(t, src.Graph().ListParents(n))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := buildRig(t)
	dst, err := src.Clone()
	require.NoError(t, err)

	for _, m := range dst.Root().ListMeshes() {
		m.Dispose()
	}
	dst.Root().ListNodes()[0].SetTranslation([3]float32{9, 9, 9})

	assert.Len(t, src.Root().ListMeshes(), 1)
	assert.NotNil(t, src.Root().ListNodes()[1].GetMesh())
	assert.Equal(t, [3]float32{0, 0, 0}, src.Root().ListNodes()[0].Translation())
}

func TestClonePreservesSharing(t *testing.T) {
	src := NewDocument()
	tex := src.CreateTexture("shared")
	a := src.CreateMaterial("a")
	b := src.CreateMaterial("b")
	require.NoError(t, a.SetBaseColorTexture(tex))
	require.NoError(t, b.SetBaseColorTexture(tex))

	dst, err := src.Clone()
	require.NoError(t, err)

	mats := dst.Root().ListMaterials()
	require.Len(t, mats, 2)
	require.Len(t, dst.Root().ListTextures(), 1)
	assert.Same(t, mats[0].GetBaseColorTexture(), mats[1].GetBaseColorTexture(),
		"shared texture stays shared, not duplicated per referrer")
}

func TestMergeLeavesSourceUntouched(t *testing.T) {
	src := buildRig(t)
	before := src.Graph().LinkCount()

	dst := NewDocument()
	require.NoError(t, dst.Merge(src))

	assert.Equal(t, before, src.Graph().LinkCount())
	assert.True(t, src.Root().Equals(dst.Root()))
}

func TestMergeAdoptsMetadataWhenUnset(t *testing.T) {
	src := NewDocument()
	src.Root().SetGenerator("gen-x").SetCopyright("(c) someone")

	dst := NewDocument()
	require.NoError(t, dst.Merge(src))

	assert.Equal(t, "gen-x", dst.Root().Generator())
	assert.Equal(t, "(c) someone", dst.Root().Copyright())
	assert.True(t, src.Root().Equals(dst.Root()))
}

func TestMergeKeepsDestinationMetadata(t *testing.T) {
	src := NewDocument()
	src.Root().SetGenerator("gen-x")

	dst := NewDocument()
	dst.Root().SetGenerator("gen-mine")
	require.NoError(t, dst.Merge(src))

	assert.Equal(t, "gen-mine", dst.Root().Generator())
}

func TestMergeIntoPopulatedDocument(t *testing.T) {
	dst := NewDocument()
	own := dst.CreateScene("existing")
	require.NoError(t, dst.Root().SetDefaultScene(own))
	dst.CreateNode("mine")

	require.NoError(t, dst.Merge(buildRig(t)))

	assert.Len(t, dst.Root().ListScenes(), 2)
	assert.Len(t, dst.Root().ListNodes(), 3)
	// Pre-existing default scene wins.
	assert.Same(t, own, dst.Root().GetDefaultScene())
}

func TestMergeAdoptsDefaultSceneWhenUnset(t *testing.T) {
	dst := NewDocument()
	require.NoError(t, dst.Merge(buildRig(t)))

	ds := dst.Root().GetDefaultScene()
	require.NotNil(t, ds)
	assert.Equal(t, "main", ds.Name())
	assert.Same(t, dst, ds.Document())
}

func TestMergeReconcilesExtensions(t *testing.T) {
	dst := NewDocument()
	dst.CreateExtension("KHR_materials_unlit")

	src := NewDocument()
	src.CreateExtension("KHR_materials_unlit").SetRequired(true)
	src.CreateExtension("KHR_lights_punctual")

	require.NoError(t, dst.Merge(src))

	exts := dst.Root().ListExtensions()
	require.Len(t, exts, 2)
	assert.Equal(t, "KHR_materials_unlit", exts[0].ExtensionName())
	assert.True(t, exts[0].Required(), "required by either side means required")
	assert.Equal(t, "KHR_lights_punctual", exts[1].ExtensionName())
}

func TestMergeRemapsReferences(t *testing.T) {
	src := buildRig(t)
	dst := NewDocument()
	require.NoError(t, dst.Merge(src))

	nodes := dst.Root().ListNodes()
	require.Len(t, nodes, 2)
	child := nodes[1]
	mesh := child.GetMesh()
	require.NotNil(t, mesh)
	assert.Same(t, dst, mesh.Document())

	prims := mesh.ListPrimitives()
	require.Len(t, prims, 1)
	mat := prims[0].GetMaterial()
	require.NotNil(t, mat)
	assert.Same(t, dst, mat.GetBaseColorTexture().Document())
	assert.Equal(t, []uint32{0, 1, 2}, prims[0].GetIndices().Uints())

	anims := dst.Root().ListAnimations()
	require.Len(t, anims, 1)
	ch := anims[0].ListChannels()[0]
	assert.Same(t, child, ch.GetTargetNode())
}

func TestMergeSelfFails(t *testing.T) {
	d := NewDocument()
	assert.Error(t, d.Merge(d))
}

func TestMergeNilIsNoop(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.Merge(nil))
	assert.Empty(t, d.Root().ListScenes())
}
