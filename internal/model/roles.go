package model

// Role codes used by the probe. Java Swing components surface through the
// macOS accessibility bridge with the same AX roles as native controls:
// JLabel as AXStaticText, JTextField as AXTextField, the editor as AXTextArea.
const (
	RoleLabel  = "txt"
	RoleInput  = "input"
	RoleWindow = "window"
	RoleOther  = "other"
)

// RoleMap maps macOS AXRole values to compact role codes.
var RoleMap = map[string]string{
	"AXButton":      "btn",
	"AXStaticText":  RoleLabel,
	"AXLink":        "lnk",
	"AXImage":       "img",
	"AXTextField":   RoleInput,
	"AXTextArea":    RoleInput,
	"AXComboBox":    RoleInput,
	"AXCheckBox":    "chk",
	"AXRadioButton": "radio",
	"AXMenu":        "menu",
	"AXMenuBar":     "menu",
	"AXMenuItem":    "menuitem",
	"AXTabGroup":    "tab",
	"AXList":        "list",
	"AXTable":       "list",
	"AXRow":         "row",
	"AXCell":        "cell",
	"AXGroup":       "group",
	"AXSplitGroup":  "group",
	"AXScrollArea":  "scroll",
	"AXToolbar":     "toolbar",
	"AXWindow":      RoleWindow,
	"AXSheet":       RoleWindow,
}

// MapRole converts a raw accessibility role to a compact code.
func MapRole(axRole string) string {
	if short, ok := RoleMap[axRole]; ok {
		return short
	}
	return RoleOther
}
