package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID      int    `yaml:"i"           json:"i"`
	Role    string `yaml:"r"           json:"r"`
	Title   string `yaml:"t,omitempty" json:"t,omitempty"`
	Value   string `yaml:"v,omitempty" json:"v,omitempty"`
	Bounds  [4]int `yaml:"b"           json:"b"`
	Focused bool   `yaml:"f,omitempty" json:"f,omitempty"`
	Path    string `yaml:"p,omitempty" json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list in depth-first
// order. Each element gets a path string showing its location in the tree
// using role codes joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	currentPath := el.Role
	if parentPath != "" {
		currentPath = parentPath + " > " + el.Role
	}

	*result = append(*result, FlatElement{
		ID:      el.ID,
		Role:    el.Role,
		Title:   el.Title,
		Value:   el.Value,
		Bounds:  el.Bounds,
		Focused: el.Focused,
		Path:    currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
