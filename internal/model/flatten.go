package model

// FlatWidget is a snapshot node with a type breadcrumb instead of children.
type FlatWidget struct {
	ID   string `yaml:"id"             json:"id"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// FlattenTree converts a snapshot tree into a flat list. Each widget gets a
// path string showing its location in the tree using type tags joined with
// " > ". Order matches SearchTree's visitation order.
func FlattenTree(root Widget) []FlatWidget {
	var result []FlatWidget
	flattenRecursive(root, "", &result)
	return result
}

func flattenRecursive(node Widget, parentPath string, result *[]FlatWidget) {
	currentPath := node.Properties.Type
	if parentPath != "" {
		currentPath = parentPath + " > " + node.Properties.Type
	}

	*result = append(*result, FlatWidget{
		ID:   node.Properties.ID,
		Type: node.Properties.Type,
		Text: node.Properties.Text,
		Path: currentPath,
	})

	for _, child := range node.Children {
		flattenRecursive(child, currentPath, result)
	}
}
