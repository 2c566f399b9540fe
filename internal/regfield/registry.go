package regfield

// Presentation registry for field types. Unknown tags fall back to the
// default icon/color so forms stay renderable even if the server learns
// new types before the console is updated.

const (
	defaultIcon  = "help-circle"
	defaultColor = "gray"
)

var typeIcons = map[string]string{
	TypeText:     "type",
	TypeTextarea: "align-left",
	TypeNumber:   "hash",
	TypeEmail:    "mail",
	TypeTel:      "phone",
	TypeURL:      "link",
	TypeDate:     "calendar",
	TypeDropdown: "chevron-down",
	TypeRadio:    "circle-dot",
	TypeCheckbox: "check-square",
	TypeFile:     "paperclip",
}

var typeColors = map[string]string{
	TypeText:     "blue",
	TypeTextarea: "blue",
	TypeNumber:   "purple",
	TypeEmail:    "teal",
	TypeTel:      "teal",
	TypeURL:      "indigo",
	TypeDate:     "orange",
	TypeDropdown: "green",
	TypeRadio:    "green",
	TypeCheckbox: "green",
	TypeFile:     "rose",
}

// TypeIcon returns the icon token for a field type
func TypeIcon(fieldType string) string {
	if icon, ok := typeIcons[fieldType]; ok {
		return icon
	}
	return defaultIcon
}

// TypeColor returns the color token for a field type
func TypeColor(fieldType string) string {
	if color, ok := typeColors[fieldType]; ok {
		return color
	}
	return defaultColor
}

// IsKnownType reports whether the tag belongs to the closed type set
func IsKnownType(fieldType string) bool {
	_, ok := typeIcons[fieldType]
	return ok
}

// IsChoiceType reports whether the type requires an options list
func IsChoiceType(fieldType string) bool {
	switch fieldType {
	case TypeDropdown, TypeRadio, TypeCheckbox:
		return true
	}
	return false
}
