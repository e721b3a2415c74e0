package graph

import "fmt"

func ExampleGraph_Link() {
	// A material referencing a texture is one named link in the registry.
	g := New()
	material, texture := newStub(), newStub()
	g.Register(material)
	g.Register(texture)

	link, _ := g.Link("baseColorTexture", material, texture)
	fmt.Println("relation:", link.Name())
	fmt.Println("parents of texture:", len(g.ListParents(texture)))

	// Linking to an absent target is "no relation", not an error.
	none, err := g.Link("baseColorTexture", material, nil)
	fmt.Println("nil target:", none, err)
	// Output:
	// relation: baseColorTexture
	// parents of texture: 1
	// nil target: <nil> <nil>
}

func ExampleGraph_DisposeLinks() {
	g := New()
	scene, node := newStub(), newStub()
	g.Register(scene)
	g.Register(node)
	g.Link("child", scene, node)

	// Disposing removes every link touching the node, both directions.
	g.DisposeLinks(node)
	fmt.Println("links left:", g.LinkCount())
	fmt.Println("parents left:", len(g.ListParents(node)))
	// Output:
	// links left: 0
	// parents left: 0
}
