// Package nav builds the link-annotated structures used for menus and
// breadcrumb trails.
package nav

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/slug"
)

// DefaultBasePath is the URL namespace documents are served under.
const DefaultBasePath = "/docs"

// Node is one entry of the navigation forest. Children is nil for leaves and
// never an empty slice.
type Node struct {
	Label    string  `json:"label"`
	Href     string  `json:"href"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// BuildNavTree returns the navigation forest for raw paths, in first-seen
// order. Each node's Href is basePath joined with the slug prefix it stands
// for. The root index document contributes no node, and paths below a
// directory named index are left out.
func BuildNavTree(paths []string, basePath string) []*Node {
	base := strings.TrimSuffix(basePath, "/")
	root := &Node{}
	for _, p := range paths {
		segs := slug.Segments(slug.Normalize(p))
		if len(segs) == 0 || slices.ContainsFunc(segs, slug.IsIndexSegment) || slices.Contains(segs, "") {
			continue
		}

		node := root
		for i, seg := range segs {
			node = node.child(seg, base+"/"+strings.Join(segs[:i+1], "/"))
		}
	}
	if root.Children == nil {
		return []*Node{}
	}
	return root.Children
}

// child returns the child labeled label, appending a new leaf when absent.
func (n *Node) child(label, href string) *Node {
	for _, c := range n.Children {
		if c.Label == label {
			return c
		}
	}
	c := &Node{Label: label, Href: href}
	n.Children = append(n.Children, c)
	return c
}

// Walk calls fn for every node in depth-first pre-order.
func Walk(forest []*Node, fn func(*Node)) {
	for _, n := range forest {
		fn(n)
		Walk(n.Children, fn)
	}
}
