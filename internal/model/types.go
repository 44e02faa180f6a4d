package model

// TypeAliases maps short type codes to the scripting engine's widget class
// tags, so tree filters can be written as "txt,btn" instead of full tags.
var TypeAliases = map[string]string{
	"txt":    "GuiTextField",
	"ctxt":   "GuiCTextField",
	"lbl":    "GuiLabel",
	"btn":    "GuiButton",
	"box":    "GuiBox",
	"chk":    "GuiCheckBox",
	"radio":  "GuiRadioButton",
	"cmb":    "GuiComboBox",
	"tab":    "GuiTabStrip",
	"table":  "GuiTableControl",
	"shell":  "GuiShell",
	"wnd":    "GuiFrameWindow",
	"tbar":   "GuiToolbar",
	"mbar":   "GuiMenubar",
	"sbar":   "GuiStatusbar",
	"okcd":   "GuiOkCodeField",
	"usr":    "GuiUserArea",
	"ses":    "GuiSession",
	"pwd":    "GuiPasswordField",
	"simple": "GuiSimpleContainer",
}

// ExpandTypes expands short type codes to class tags. Full tags pass through
// unchanged. Duplicates are removed, first occurrence wins.
func ExpandTypes(types []string) []string {
	seen := make(map[string]bool, len(types))
	var expanded []string
	for _, t := range types {
		if full, ok := TypeAliases[t]; ok {
			t = full
		}
		if !seen[t] {
			seen[t] = true
			expanded = append(expanded, t)
		}
	}
	return expanded
}
