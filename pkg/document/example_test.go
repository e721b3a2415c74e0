package document_test

import (
	"fmt"

	"github.com/modelwerk/gltfkit/pkg/document"
)

func ExampleDocument() {
	doc := document.NewDocument()

	mesh := doc.CreateMesh("triangle")
	node := doc.CreateNode("pivot")
	_ = node.SetMesh(mesh)

	scene := doc.CreateScene("main")
	_ = scene.AddChild(node)
	_ = doc.Root().SetDefaultScene(scene)

	fmt.Println(doc.Root().GetDefaultScene().Name())
	fmt.Println(len(scene.ListChildren()))
	// Output:
	// main
	// 1
}

func ExampleProperty_Dispose() {
	doc := document.NewDocument()

	mesh := doc.CreateMesh("m")
	node := doc.CreateNode("n")
	_ = node.SetMesh(mesh)

	mesh.Dispose()

	fmt.Println(node.GetMesh() == nil)
	fmt.Println(len(doc.Root().ListMeshes()))
	// Output:
	// true
	// 0
}

func ExampleDocument_Merge() {
	a := document.NewDocument()
	a.CreateScene("city")

	b := document.NewDocument()
	b.CreateScene("props")

	_ = a.Merge(b)

	for _, s := range a.Root().ListScenes() {
		fmt.Println(s.Name())
	}
	// Output:
	// city
	// props
}
