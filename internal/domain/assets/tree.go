package assets

import (
	"strings"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
)

// treeNode is an arena entry. Children are arena indexes in first-insertion
// order; index keeps segment lookups O(1).
type treeNode struct {
	name     string
	children []int
	index    map[string]int
}

// treeBuilder builds the folder tree in two phases: insert every path into
// the arena, then convert the arena into immutable FolderNode values.
type treeBuilder struct {
	nodes []treeNode
}

const rootIndex = 0

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{
		nodes: []treeNode{{index: make(map[string]int)}},
	}
}

// child returns the index of the named child of parent, creating it if absent
func (b *treeBuilder) child(parent int, name string) int {
	if idx, ok := b.nodes[parent].index[name]; ok {
		return idx
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{name: name, index: make(map[string]int)})
	b.nodes[parent].children = append(b.nodes[parent].children, idx)
	b.nodes[parent].index[name] = idx
	return idx
}

// insert walks one path, reusing existing segments.
// A segment first inserted as a file becomes a directory once another path
// descends through it; node type is decided at conversion time.
func (b *treeBuilder) insert(path string) {
	current := rootIndex
	for _, segment := range Segments(path) {
		current = b.child(current, segment)
	}
}

// convert turns the subtree rooted at idx into its public shape, depth first
func (b *treeBuilder) convert(idx int) []types.FolderNode {
	children := b.nodes[idx].children
	out := make([]types.FolderNode, 0, len(children))

	for _, c := range children {
		node := types.FolderNode{Name: b.nodes[c].name, Type: types.NodeFile}
		if len(b.nodes[c].children) > 0 {
			node.Type = types.NodeDirectory
			node.Children = b.convert(c)
		}
		out = append(out, node)
	}

	return out
}

// Segments strips leading slashes and splits path on "/". Empty segments are
// kept, so "/" and "/docs/" end in an empty-named file.
func Segments(path string) []string {
	return strings.Split(strings.TrimLeft(path, "/"), "/")
}

// BuildTree converts a flat list of asset paths into a folder forest.
// Sibling order follows the first path that introduced each segment.
func BuildTree(paths []string) []types.FolderNode {
	b := newTreeBuilder()
	for _, path := range paths {
		b.insert(path)
	}
	return b.convert(rootIndex)
}

// CountLeaves returns the number of file nodes in the forest
func CountLeaves(forest []types.FolderNode) int {
	count := 0
	for _, node := range forest {
		if node.IsDir() {
			count += CountLeaves(node.Children)
		} else {
			count++
		}
	}
	return count
}

// CountNodes returns the total number of nodes in the forest
func CountNodes(forest []types.FolderNode) int {
	count := len(forest)
	for _, node := range forest {
		count += CountNodes(node.Children)
	}
	return count
}
