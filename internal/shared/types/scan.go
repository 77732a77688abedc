package types

import "encoding/json"

// NodeType distinguishes files from directories in the folder tree
type NodeType string

const (
	NodeFile      NodeType = "file"
	NodeDirectory NodeType = "directory"
)

// MetaTag is one <meta> element. Absent attributes stay nil so they are
// omitted from the JSON output, while present-but-empty ones are kept.
type MetaTag struct {
	Name     *string `json:"name,omitempty"`
	Property *string `json:"property,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// FolderNode is a node of the asset folder tree.
// Directories always carry at least one child; files never do.
type FolderNode struct {
	Name     string       `json:"name"`
	Type     NodeType     `json:"type"`
	Children []FolderNode `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory
func (n FolderNode) IsDir() bool {
	return n.Type == NodeDirectory
}

// Manifest holds the raw bytes of a parsed Web App Manifest.
// A nil Manifest marshals as JSON null.
type Manifest = json.RawMessage

// ScanResult is the complete output of one scan
type ScanResult struct {
	Favicon    string       `json:"favicon"`
	MetaTags   []MetaTag    `json:"metaTags"`
	Manifest   Manifest     `json:"manifest"`
	Author     *string      `json:"author"`
	FolderTree []FolderNode `json:"folderTree"`
}
