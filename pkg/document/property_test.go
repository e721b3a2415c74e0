package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelwerk/gltfkit/pkg/graph"
)

func TestDisposeDetachesFromCollection(t *testing.T) {
	d := NewDocument()
	keep := d.CreateNode("keep")
	gone := d.CreateNode("gone")

	gone.Dispose()

	assert.True(t, gone.Disposed())
	assert.Equal(t, []*Node{keep}, d.Root().ListNodes())
}

func TestDisposeClearsInboundReferences(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("n")
	m := d.CreateMesh("m")
	require.NoError(t, n.SetMesh(m))

	m.Dispose()

	assert.Nil(t, n.GetMesh())
	assert.False(t, n.Disposed())
}

func TestDisposeIsIdempotent(t *testing.T) {
	d := NewDocument()
	s := d.CreateScene("s")
	n := d.CreateNode("n")
	require.NoError(t, s.AddChild(n))

	n.Dispose()
	n.Dispose()

	assert.True(t, n.Disposed())
	assert.Empty(t, s.ListChildren())
	assert.Len(t, d.Root().ListScenes(), 1)
}

func TestDisposeCascadesToOwnedPrimitives(t *testing.T) {
	d := NewDocument()
	mesh := d.CreateMesh("m")
	prim := d.CreatePrimitive()
	require.NoError(t, mesh.AddPrimitive(prim))

	acc := d.CreateAccessor("pos")
	require.NoError(t, prim.SetAttribute("POSITION", acc))

	mesh.Dispose()

	assert.True(t, prim.Disposed(), "owned primitive follows its mesh")
	assert.False(t, acc.Disposed(), "shared accessor survives")
	assert.Len(t, d.Root().ListAccessors(), 1)
}

func TestDetachedPrimitiveSurvivesMeshDisposal(t *testing.T) {
	d := NewDocument()
	mesh := d.CreateMesh("m")
	prim := d.CreatePrimitive()
	require.NoError(t, mesh.AddPrimitive(prim))

	mesh.RemovePrimitive(prim)
	mesh.Dispose()

	assert.False(t, prim.Disposed())
}

func TestMaterialTextureLifecycle(t *testing.T) {
	d := NewDocument()
	mat := d.CreateMaterial("mat")
	tex := d.CreateTexture("tex")

	assert.Nil(t, mat.GetBaseColorTexture())
	assert.Nil(t, mat.GetTextureInfo(SlotBaseColor))

	require.NoError(t, mat.SetBaseColorTexture(tex))
	assert.Same(t, tex, mat.GetBaseColorTexture())

	info := mat.GetTextureInfo(SlotBaseColor)
	require.NotNil(t, info)
	assert.Equal(t, WrapRepeat, info.WrapS())

	// Rebinding the slot keeps the slot parameters.
	info.SetTexCoord(1)
	tex2 := d.CreateTexture("tex2")
	require.NoError(t, mat.SetBaseColorTexture(tex2))
	require.NotNil(t, mat.GetTextureInfo(SlotBaseColor))
	assert.Equal(t, 1, mat.GetTextureInfo(SlotBaseColor).TexCoord())

	// Clearing the slot disposes the info sub-object.
	require.NoError(t, mat.SetBaseColorTexture(nil))
	assert.Nil(t, mat.GetBaseColorTexture())
	assert.Nil(t, mat.GetTextureInfo(SlotBaseColor))
	assert.True(t, info.Disposed())
	assert.False(t, tex2.Disposed())
}

func TestMaterialDisposeLeavesSharedTexture(t *testing.T) {
	d := NewDocument()
	tex := d.CreateTexture("shared")
	a := d.CreateMaterial("a")
	b := d.CreateMaterial("b")
	require.NoError(t, a.SetBaseColorTexture(tex))
	require.NoError(t, b.SetBaseColorTexture(tex))
	infoA := a.GetTextureInfo(SlotBaseColor)

	a.Dispose()

	assert.True(t, infoA.Disposed(), "owned texture info follows its material")
	assert.False(t, tex.Disposed())
	assert.Same(t, tex, b.GetBaseColorTexture())
}

func TestTextureDisposeClearsMaterialSlot(t *testing.T) {
	d := NewDocument()
	mat := d.CreateMaterial("mat")
	tex := d.CreateTexture("tex")
	require.NoError(t, mat.SetBaseColorTexture(tex))

	tex.Dispose()

	assert.Nil(t, mat.GetBaseColorTexture())
	assert.Nil(t, mat.GetTextureInfo(SlotBaseColor))
	assert.False(t, mat.Disposed())
}

func TestSetRefRejectsDisposedTarget(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("n")
	m := d.CreateMesh("m")
	m.Dispose()

	err := n.SetMesh(m)
	assert.ErrorIs(t, err, graph.ErrNodeDisposed)
	assert.Nil(t, n.GetMesh())
}

func TestSetRefRejectsForeignTarget(t *testing.T) {
	a := NewDocument()
	b := NewDocument()
	n := a.CreateNode("n")
	m := b.CreateMesh("m")

	err := n.SetMesh(m)
	assert.ErrorIs(t, err, graph.ErrNotRegistered)
}

func TestRemoveChildIsIdempotent(t *testing.T) {
	d := NewDocument()
	s := d.CreateScene("s")
	n := d.CreateNode("n")
	require.NoError(t, s.AddChild(n))

	s.RemoveChild(n)
	s.RemoveChild(n)

	assert.Empty(t, s.ListChildren())
	assert.False(t, n.Disposed(), "detaching never disposes")
}

func TestListOrderAndDuplicates(t *testing.T) {
	d := NewDocument()
	s := d.CreateScene("s")
	a := d.CreateNode("a")
	b := d.CreateNode("b")

	require.NoError(t, s.AddChild(a))
	require.NoError(t, s.AddChild(b))
	require.NoError(t, s.AddChild(a)) // instancing: duplicates allowed

	assert.Equal(t, []*Node{a, b, a}, s.ListChildren())

	// RemoveChild drops only the first occurrence.
	s.RemoveChild(a)
	assert.Equal(t, []*Node{b, a}, s.ListChildren())
}

func TestGraphParentsAreDistinct(t *testing.T) {
	d := NewDocument()
	s := d.CreateScene("s")
	n := d.CreateNode("n")
	require.NoError(t, s.AddChild(n))
	require.NoError(t, s.AddChild(n))

	parents := d.Graph().ListParents(n)
	// Root (collection) plus the scene, each once.
	assert.Len(t, parents, 2)
}

func TestExtrasSurviveCopy(t *testing.T) {
	d := NewDocument()
	n := d.CreateNode("n")
	n.Extras()["lod"] = 2

	c := d.CreateNode("")
	require.NoError(t, c.Copy(n, func(p Property) Property { return p }))

	assert.Equal(t, "n", c.Name())
	assert.Equal(t, 2, c.Extras()["lod"])
}

func TestEquals(t *testing.T) {
	d := NewDocument()

	t.Run("SameData", func(t *testing.T) {
		a := d.CreateNode("a").SetTranslation([3]float32{1, 2, 3})
		b := d.CreateNode("b").SetTranslation([3]float32{1, 2, 3})
		assert.True(t, a.Equals(b), "names are display data, not identity")
	})

	t.Run("DifferentData", func(t *testing.T) {
		a := d.CreateNode("a").SetScale([3]float32{2, 2, 2})
		b := d.CreateNode("a")
		assert.False(t, a.Equals(b))
	})

	t.Run("DifferentType", func(t *testing.T) {
		n := d.CreateNode("x")
		m := d.CreateMesh("x")
		assert.False(t, n.Equals(m))
	})

	t.Run("RecursesIntoReferences", func(t *testing.T) {
		m1 := d.CreateMesh("m").SetWeights([]float32{1})
		m2 := d.CreateMesh("m").SetWeights([]float32{2})
		a := d.CreateNode("a")
		b := d.CreateNode("b")
		require.NoError(t, a.SetMesh(m1))
		require.NoError(t, b.SetMesh(m2))
		assert.False(t, a.Equals(b))

		m2.SetWeights([]float32{1})
		assert.True(t, a.Equals(b))
	})

	t.Run("InboundLinksIgnored", func(t *testing.T) {
		shared := d.CreateMesh("shared")
		solo := d.CreateMesh("shared")
		for range 3 {
			n := d.CreateNode("ref")
			require.NoError(t, n.SetMesh(shared))
		}
		assert.True(t, shared.Equals(solo))
	})

	t.Run("Cycle", func(t *testing.T) {
		a1 := d.CreateNode("a")
		a2 := d.CreateNode("a")
		require.NoError(t, a1.AddChild(a1))
		require.NoError(t, a2.AddChild(a2))
		assert.True(t, a1.Equals(a2))
	})
}

func TestSwapRedirectsInboundReferences(t *testing.T) {
	d := NewDocument()
	old := d.CreateMesh("old")
	neu := d.CreateMesh("new")
	n1 := d.CreateNode("n1")
	n2 := d.CreateNode("n2")
	require.NoError(t, n1.SetMesh(old))
	require.NoError(t, n2.SetMesh(old))

	require.NoError(t, Swap(old, neu))

	assert.Same(t, neu, n1.GetMesh())
	assert.Same(t, neu, n2.GetMesh())
	// Collection membership is untouched until disposal.
	assert.Len(t, d.Root().ListMeshes(), 2)

	old.Dispose()
	assert.Equal(t, []*Mesh{neu}, d.Root().ListMeshes())
	assert.Same(t, neu, n1.GetMesh())
}

func TestSwapAcrossDocumentsFails(t *testing.T) {
	a := NewDocument()
	b := NewDocument()
	err := Swap(a.CreateMesh("m"), b.CreateMesh("m"))
	assert.ErrorIs(t, err, graph.ErrNotRegistered)
}
