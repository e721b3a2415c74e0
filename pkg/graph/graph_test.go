package graph

import (
	"testing"

	"github.com/google/uuid"
)

// stub is a minimal Node implementation for registry tests.
type stub struct {
	uid      uuid.UUID
	disposed bool
}

func newStub() *stub { return &stub{uid: uuid.New()} }

func (s *stub) UID() uuid.UUID { return s.uid }
func (s *stub) Disposed() bool { return s.disposed }

func TestRegister(t *testing.T) {
	g := New()
	n := newStub()

	if err := g.Register(n); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !g.Contains(n) {
		t.Error("Contains = false after Register")
	}
	if err := g.Register(n); err != ErrDuplicateNode {
		t.Errorf("second Register = %v, want ErrDuplicateNode", err)
	}
	if err := g.Register(nil); err != ErrNilNode {
		t.Errorf("Register(nil) = %v, want ErrNilNode", err)
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(g *Graph) (src, tgt Node)
		wantErr error
		wantNil bool
	}{
		{
			name: "Valid",
			setup: func(g *Graph) (Node, Node) {
				a, b := newStub(), newStub()
				g.Register(a)
				g.Register(b)
				return a, b
			},
		},
		{
			name: "NilTargetIsNoRelation",
			setup: func(g *Graph) (Node, Node) {
				a := newStub()
				g.Register(a)
				return a, nil
			},
			wantNil: true,
		},
		{
			name: "UnregisteredTarget",
			setup: func(g *Graph) (Node, Node) {
				a := newStub()
				g.Register(a)
				return a, newStub()
			},
			wantErr: ErrNotRegistered,
		},
		{
			name: "UnregisteredSource",
			setup: func(g *Graph) (Node, Node) {
				b := newStub()
				g.Register(b)
				return newStub(), b
			},
			wantErr: ErrNotRegistered,
		},
		{
			name: "DisposedTarget",
			setup: func(g *Graph) (Node, Node) {
				a, b := newStub(), newStub()
				g.Register(a)
				g.Register(b)
				b.disposed = true
				return a, b
			},
			wantErr: ErrNodeDisposed,
		},
		{
			name: "NilSource",
			setup: func(g *Graph) (Node, Node) {
				b := newStub()
				g.Register(b)
				return nil, b
			},
			wantErr: ErrNilNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			src, tgt := tt.setup(g)

			l, err := g.Link("ref", src, tgt)
			if err != tt.wantErr {
				t.Fatalf("Link error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if tt.wantNil {
				if l != nil {
					t.Fatal("expected nil link for nil target")
				}
				return
			}
			if l == nil {
				t.Fatal("expected link, got nil")
			}
			if l.Name() != "ref" || l.Source() != src || l.Target() != tgt {
				t.Errorf("link = {%s %v %v}, want {ref %v %v}", l.Name(), l.Source(), l.Target(), src, tgt)
			}
		})
	}
}

func TestParentChildSymmetry(t *testing.T) {
	g := New()
	a, b := newStub(), newStub()
	g.Register(a)
	g.Register(b)

	l, err := g.Link("child", a, b)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	parents := g.ListParents(b)
	if len(parents) != 1 || parents[0] != Node(a) {
		t.Errorf("ListParents(b) = %v, want [a]", parents)
	}

	childLinks := g.ListChildLinks(a)
	if len(childLinks) != 1 || childLinks[0] != l {
		t.Errorf("ListChildLinks(a) = %v, want [l]", childLinks)
	}
}

func TestListParentsDistinct(t *testing.T) {
	g := New()
	a, b := newStub(), newStub()
	g.Register(a)
	g.Register(b)

	// Two distinct links from the same source count once.
	g.Link("first", a, b)
	g.Link("second", a, b)

	if got := g.ListParents(b); len(got) != 1 {
		t.Errorf("ListParents = %d parents, want 1", len(got))
	}
	if got := g.ListParentLinks(b); len(got) != 2 {
		t.Errorf("ListParentLinks = %d links, want 2", len(got))
	}
}

func TestDisposeLinks(t *testing.T) {
	g := New()
	a, b, c := newStub(), newStub(), newStub()
	for _, n := range []*stub{a, b, c} {
		g.Register(n)
	}
	g.Link("out", b, c)
	g.Link("in", a, b)

	g.DisposeLinks(b)

	if got := g.ListParents(b); got != nil {
		t.Errorf("ListParents(b) = %v after DisposeLinks, want nil", got)
	}
	if got := g.ListChildLinks(b); len(got) != 0 {
		t.Errorf("ListChildLinks(b) = %v after DisposeLinks, want empty", got)
	}
	if got := g.ListParents(c); got != nil {
		t.Errorf("ListParents(c) = %v, want nil (no link may survive targeting b's children via b)", got)
	}
	if g.LinkCount() != 0 {
		t.Errorf("LinkCount = %d, want 0", g.LinkCount())
	}

	// Idempotent.
	g.DisposeLinks(b)
	if g.LinkCount() != 0 {
		t.Errorf("LinkCount after second dispose = %d, want 0", g.LinkCount())
	}
}

func TestDisconnectKeepsInbound(t *testing.T) {
	g := New()
	a, b, c := newStub(), newStub(), newStub()
	for _, n := range []*stub{a, b, c} {
		g.Register(n)
	}
	g.Link("in", a, b)
	g.Link("out", b, c)

	g.Disconnect(b)

	if got := g.ListChildLinks(b); len(got) != 0 {
		t.Errorf("outbound links = %d after Disconnect, want 0", len(got))
	}
	if got := g.ListParents(b); len(got) != 1 {
		t.Errorf("inbound parents = %d after Disconnect, want 1", len(got))
	}
}

func TestSetTarget(t *testing.T) {
	g := New()
	a, b, c := newStub(), newStub(), newStub()
	for _, n := range []*stub{a, b, c} {
		g.Register(n)
	}
	l, _ := g.Link("ref", a, b)

	if err := l.SetTarget(c); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if l.Target() != Node(c) {
		t.Errorf("Target = %v, want c", l.Target())
	}
	if got := g.ListParents(b); got != nil {
		t.Errorf("ListParents(b) = %v after retarget, want nil", got)
	}
	if got := g.ListParents(c); len(got) != 1 || got[0] != Node(a) {
		t.Errorf("ListParents(c) = %v, want [a]", got)
	}

	if err := l.SetTarget(nil); err != ErrNilNode {
		t.Errorf("SetTarget(nil) = %v, want ErrNilNode", err)
	}

	foreign := newStub()
	if err := l.SetTarget(foreign); err != ErrNotRegistered {
		t.Errorf("SetTarget(foreign) = %v, want ErrNotRegistered", err)
	}

	b.disposed = true
	if err := l.SetTarget(b); err != ErrNodeDisposed {
		t.Errorf("SetTarget(disposed) = %v, want ErrNodeDisposed", err)
	}
}

func TestLinkDispose(t *testing.T) {
	g := New()
	a, b := newStub(), newStub()
	g.Register(a)
	g.Register(b)
	l, _ := g.Link("ref", a, b)

	l.Dispose()
	if !l.Disposed() {
		t.Error("Disposed = false after Dispose")
	}
	if g.LinkCount() != 0 {
		t.Errorf("LinkCount = %d, want 0", g.LinkCount())
	}
	if err := l.SetTarget(b); err != ErrLinkDisposed {
		t.Errorf("SetTarget on disposed link = %v, want ErrLinkDisposed", err)
	}

	// Second dispose is a no-op.
	l.Dispose()
}

func TestLinkOrderPreserved(t *testing.T) {
	g := New()
	src := newStub()
	g.Register(src)

	targets := make([]*stub, 5)
	for i := range targets {
		targets[i] = newStub()
		g.Register(targets[i])
		g.Link("child", src, targets[i])
	}

	links := g.ListChildLinks(src)
	if len(links) != len(targets) {
		t.Fatalf("links = %d, want %d", len(links), len(targets))
	}
	for i, l := range links {
		if l.Target() != Node(targets[i]) {
			t.Errorf("link %d targets %v, want %v", i, l.Target(), targets[i])
		}
	}
}
