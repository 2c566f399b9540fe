package regfield

import "testing"

func TestRegistryIsTotalOverKnownTypes(t *testing.T) {
	known := []string{
		TypeText, TypeTextarea, TypeNumber, TypeEmail, TypeTel,
		TypeURL, TypeDate, TypeDropdown, TypeRadio, TypeCheckbox, TypeFile,
	}

	for _, ft := range known {
		if TypeIcon(ft) == defaultIcon {
			t.Errorf("known type %s resolved to the fallback icon", ft)
		}
		if TypeColor(ft) == defaultColor {
			t.Errorf("known type %s resolved to the fallback color", ft)
		}
	}
}

func TestRegistryFallsBackForUnknownTypes(t *testing.T) {
	// New server-side types must stay renderable on older consoles
	if TypeIcon("quantum") != defaultIcon {
		t.Error("unknown type should fall back to the default icon")
	}
	if TypeColor("quantum") != defaultColor {
		t.Error("unknown type should fall back to the default color")
	}
}

func TestIsChoiceType(t *testing.T) {
	for _, ft := range []string{TypeDropdown, TypeRadio, TypeCheckbox} {
		if !IsChoiceType(ft) {
			t.Errorf("%s should be a choice type", ft)
		}
	}
	for _, ft := range []string{TypeText, TypeNumber, TypeFile, "unknown"} {
		if IsChoiceType(ft) {
			t.Errorf("%s should not be a choice type", ft)
		}
	}
}
