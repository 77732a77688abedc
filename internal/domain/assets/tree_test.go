package assets

import (
	"testing"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

func file(name string) types.FolderNode {
	return types.FolderNode{Name: name, Type: types.NodeFile}
}

func dir(name string, children ...types.FolderNode) types.FolderNode {
	return types.FolderNode{Name: name, Type: types.NodeDirectory, Children: children}
}

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []types.FolderNode
	}{
		{
			name:  "empty input",
			paths: nil,
			want:  []types.FolderNode{},
		},
		{
			name:  "shared prefix merges into one directory",
			paths: []string{"/a/b.js", "/a/c.css", "/d.png"},
			want: []types.FolderNode{
				dir("a", file("b.js"), file("c.css")),
				file("d.png"),
			},
		},
		{
			name:  "first insertion fixes sibling order",
			paths: []string{"/z.js", "/static/x.css", "/a.js", "/static/a.css"},
			want: []types.FolderNode{
				file("z.js"),
				dir("static", file("x.css"), file("a.css")),
				file("a.js"),
			},
		},
		{
			name:  "deep nesting",
			paths: []string{"/_next/static/chunks/main.js", "/_next/static/css/app.css"},
			want: []types.FolderNode{
				dir("_next",
					dir("static",
						dir("chunks", file("main.js")),
						dir("css", file("app.css")),
					),
				),
			},
		},
		{
			name:  "leaf promoted when later used as directory",
			paths: []string{"/a", "/a/b.js"},
			want:  []types.FolderNode{dir("a", file("b.js"))},
		},
		{
			name:  "directory kept when later inserted as leaf",
			paths: []string{"/a/b.js", "/a"},
			want:  []types.FolderNode{dir("a", file("b.js"))},
		},
		{
			name:  "empty segments become empty-named nodes",
			paths: []string{"//a//b.js", "/c/", "/"},
			want: []types.FolderNode{
				dir("a", dir("", file("b.js"))),
				dir("c", file("")),
				file(""),
			},
		},
		{
			name:  "duplicate paths collapse",
			paths: []string{"/a.js", "/a.js"},
			want:  []types.FolderNode{file("a.js")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTree(tt.paths))
		})
	}
}

func TestBuildTreeLeafCount(t *testing.T) {
	paths := []string{
		"/favicon.ico",
		"/manifest.json",
		"/css/site.css",
		"/css/print.css",
		"/js/vendor/jquery.js",
		"/js/app.js",
		"/img/logo.svg",
	}

	tree := BuildTree(paths)

	assert.Equal(t, len(paths), CountLeaves(tree))
	assert.Equal(t, CountNodes(tree), CountNodes(BuildTree(paths)), "node count must be deterministic")
	assert.Equal(t, 11, CountNodes(tree))
}

func TestBuildTreeRootPathIsALeaf(t *testing.T) {
	paths := []string{"/", "/favicon.ico", "/docs/", "/docs/intro.html"}

	tree := BuildTree(paths)

	assert.Equal(t, []types.FolderNode{
		file(""),
		file("favicon.ico"),
		dir("docs", file(""), file("intro.html")),
	}, tree)
	assert.Equal(t, len(paths), CountLeaves(tree))
}

func TestBuildTreeNoDuplicateSiblings(t *testing.T) {
	tree := BuildTree([]string{"/a/x.js", "/b/y.js", "/a/z.js", "/b/y.js", "/a/x.js"})

	var check func(nodes []types.FolderNode)
	check = func(nodes []types.FolderNode) {
		seen := make(map[string]bool)
		for _, n := range nodes {
			assert.False(t, seen[n.Name], "duplicate sibling %q", n.Name)
			seen[n.Name] = true
			assert.Equal(t, n.IsDir(), len(n.Children) > 0)
			check(n.Children)
		}
	}
	check(tree)
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"a", "b.js"}, Segments("/a/b.js"))
	assert.Equal(t, []string{"a", ""}, Segments("///a/"))
	assert.Equal(t, []string{"a", "", "b"}, Segments("/a//b"))
	assert.Equal(t, []string{""}, Segments("/"))
}
