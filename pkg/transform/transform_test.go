package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelwerk/gltfkit/pkg/document"
)

func TestDedupCollapsesEqualAccessors(t *testing.T) {
	d := document.NewDocument()
	a := d.CreateAccessor("a").SetFloats([]float32{1, 2, 3})
	b := d.CreateAccessor("b").SetFloats([]float32{1, 2, 3})
	c := d.CreateAccessor("c").SetFloats([]float32{9})

	p1 := d.CreatePrimitive()
	require.NoError(t, p1.SetAttribute("POSITION", a))
	p2 := d.CreatePrimitive()
	require.NoError(t, p2.SetAttribute("POSITION", b))
	mesh := d.CreateMesh("m")
	require.NoError(t, mesh.AddPrimitive(p1))
	require.NoError(t, mesh.AddPrimitive(p2))

	require.NoError(t, d.Transform(Dedup()))

	assert.True(t, b.Disposed())
	assert.False(t, a.Disposed())
	assert.False(t, c.Disposed())
	assert.Same(t, a, p2.GetAttribute("POSITION"), "referrer follows the survivor")
	assert.Len(t, d.Root().ListAccessors(), 2)
}

func TestDedupCollapsesMaterialsWithSharedTexture(t *testing.T) {
	d := document.NewDocument()
	tex := d.CreateTexture("t")
	m1 := d.CreateMaterial("m1")
	m2 := d.CreateMaterial("m2")
	require.NoError(t, m1.SetBaseColorTexture(tex))
	require.NoError(t, m2.SetBaseColorTexture(tex))

	prim := d.CreatePrimitive()
	require.NoError(t, prim.SetMaterial(m2))
	mesh := d.CreateMesh("m")
	require.NoError(t, mesh.AddPrimitive(prim))

	require.NoError(t, d.Transform(Dedup()))

	assert.True(t, m2.Disposed())
	assert.Same(t, m1, prim.GetMaterial())
	assert.False(t, tex.Disposed())
}

func TestDedupKeepsDistinctData(t *testing.T) {
	d := document.NewDocument()
	d.CreateMaterial("rough").SetRoughnessFactor(1)
	d.CreateMaterial("smooth").SetRoughnessFactor(0)

	require.NoError(t, d.Transform(Dedup()))
	assert.Len(t, d.Root().ListMaterials(), 2)
}

func TestPruneRemovesUnreferenced(t *testing.T) {
	d := document.NewDocument()
	scene := d.CreateScene("main")
	used := d.CreateNode("used")
	require.NoError(t, scene.AddChild(used))
	orphan := d.CreateNode("orphan")

	require.NoError(t, d.Transform(Prune()))

	assert.False(t, used.Disposed())
	assert.True(t, orphan.Disposed())
	assert.Equal(t, []*document.Node{used}, d.Root().ListNodes())
}

func TestPruneCascadesThroughChains(t *testing.T) {
	d := document.NewDocument()
	// mesh -> primitive -> accessor, with no node referencing the mesh:
	// the accessor only becomes prunable once the mesh is gone.
	acc := d.CreateAccessor("pos").SetFloats([]float32{0})
	prim := d.CreatePrimitive()
	require.NoError(t, prim.SetAttribute("POSITION", acc))
	mesh := d.CreateMesh("dead")
	require.NoError(t, mesh.AddPrimitive(prim))

	require.NoError(t, d.Transform(Prune()))

	assert.True(t, mesh.Disposed())
	assert.True(t, acc.Disposed())
	assert.Empty(t, d.Root().ListAccessors())
}

func TestPruneKeepsEntryPoints(t *testing.T) {
	d := document.NewDocument()
	scene := d.CreateScene("empty")
	node := d.CreateNode("animated")
	times := d.CreateAccessor("t").SetFloats([]float32{0})
	vals := d.CreateAccessor("v").SetFloats([]float32{0})
	sampler := d.CreateAnimationSampler()
	require.NoError(t, sampler.SetInput(times))
	require.NoError(t, sampler.SetOutput(vals))
	channel := d.CreateAnimationChannel()
	require.NoError(t, channel.SetTargetNode(node))
	require.NoError(t, channel.SetSampler(sampler))
	anim := d.CreateAnimation("idle")
	require.NoError(t, anim.AddSampler(sampler))
	require.NoError(t, anim.AddChannel(channel))

	require.NoError(t, d.Transform(Prune()))

	assert.False(t, scene.Disposed(), "scenes are entry points")
	assert.False(t, anim.Disposed(), "animations are entry points")
	assert.False(t, node.Disposed(), "animation targets stay referenced")
	assert.False(t, times.Disposed())
}

func TestOptimizePipeline(t *testing.T) {
	d := document.NewDocument()
	scene := d.CreateScene("main")
	node := d.CreateNode("n")
	require.NoError(t, scene.AddChild(node))

	keep := d.CreateAccessor("keep").SetFloats([]float32{1})
	dup := d.CreateAccessor("dup").SetFloats([]float32{1})
	prim := d.CreatePrimitive()
	require.NoError(t, prim.SetAttribute("POSITION", dup))
	mesh := d.CreateMesh("m")
	require.NoError(t, mesh.AddPrimitive(prim))
	require.NoError(t, node.SetMesh(mesh))

	require.NoError(t, d.Transform(Dedup(), Prune()))

	// Dedup redirects the primitive to keep; prune removes the now-orphaned
	// duplicate's slot, leaving exactly one live accessor.
	assert.True(t, dup.Disposed())
	assert.False(t, keep.Disposed())
	assert.Len(t, d.Root().ListAccessors(), 1)
	assert.Same(t, keep, prim.GetAttribute("POSITION"))
}
