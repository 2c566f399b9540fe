package regfield

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"
)

func TestDeriveFieldName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dietary Preferences!!", "dietary_preferences"},
		{"T-Shirt   Size", "t_shirt_size"},
		{"email", "email"},
		{"  Phone (WhatsApp)  ", "phone_whatsapp"},
		{"¿Cómo llegaste?", "c_mo_llegaste"},
		{"___", ""},
		{"Already_Snaked_Name", "already_snaked_name"},
		{"A--B__C", "a_b_c"},
	}

	for _, tc := range cases {
		got := DeriveFieldName(tc.in)
		if got != tc.want {
			t.Errorf("DeriveFieldName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveFieldNameNeverProducesDoubleUnderscore(t *testing.T) {
	inputs := []string{"a  b", "a!!b", "a - _ - b", "!!a!!", "x...y...z"}
	for _, in := range inputs {
		got := DeriveFieldName(in)
		for i := 1; i < len(got); i++ {
			if got[i] == '_' && got[i-1] == '_' {
				t.Fatalf("DeriveFieldName(%q) = %q contains consecutive underscores", in, got)
			}
		}
	}
}

func TestValidateDefinitionChoiceTypesRequireOptions(t *testing.T) {
	choice := []string{TypeDropdown, TypeRadio, TypeCheckbox}
	for _, ft := range choice {
		if err := ValidateDefinition(ft, "Pick one", nil, nil, nil, nil); err == nil {
			t.Errorf("type %s with no options should be rejected", ft)
		}
		opts := []FieldOption{{Label: "A", Value: "a"}}
		if err := ValidateDefinition(ft, "Pick one", opts, nil, nil, nil); err != nil {
			t.Errorf("type %s with one option should pass, got: %v", ft, err)
		}
	}

	// Non-choice types pass without options
	if err := ValidateDefinition(TypeText, "Your name", nil, nil, nil, nil); err != nil {
		t.Fatalf("text field rejected: %v", err)
	}
}

func TestValidateDefinitionConstraintScoping(t *testing.T) {
	maxLen := 50
	if err := ValidateDefinition(TypeNumber, "Age", nil, &maxLen, nil, nil); err == nil {
		t.Error("max_length on a number field should be rejected")
	}

	min, max := 10.0, 5.0
	if err := ValidateDefinition(TypeNumber, "Age", nil, nil, &min, &max); err == nil {
		t.Error("min > max should be rejected")
	}

	if err := ValidateDefinition(TypeText, "Bio", nil, nil, &min, nil); err == nil {
		t.Error("min on a text field should be rejected")
	}

	if err := ValidateDefinition("hologram", "Future", nil, nil, nil, nil); err == nil {
		t.Error("unknown type should be rejected")
	}

	if err := ValidateDefinition(TypeText, "   ", nil, nil, nil, nil); err == nil {
		t.Error("blank label should be rejected")
	}
}

func mustOptions(t *testing.T, opts []FieldOption) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(opts)
	if err != nil {
		t.Fatal(err)
	}
	return datatypes.JSON(raw)
}

func TestValidateAnswers(t *testing.T) {
	maxLen := 5
	min, max := 1.0, 10.0

	fields := []FieldDefinition{
		{Name: "full_name", Label: "Full Name", FieldType: TypeText, Required: true, MaxLength: &maxLen},
		{Name: "guests", Label: "Guests", FieldType: TypeNumber, Min: &min, Max: &max},
		{Name: "email", Label: "Email", FieldType: TypeEmail, Required: true},
		{Name: "meal", Label: "Meal", FieldType: TypeDropdown, Required: true,
			Options: mustOptions(t, []FieldOption{{Label: "Veg", Value: "veg"}, {Label: "Non-veg", Value: "nonveg"}})},
	}

	t.Run("valid submission", func(t *testing.T) {
		errs := ValidateAnswers(fields, map[string]interface{}{
			"full_name": "Asha",
			"guests":    "3",
			"email":     "asha@example.com",
			"meal":      "veg",
		})
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("missing required", func(t *testing.T) {
		errs := ValidateAnswers(fields, map[string]interface{}{
			"guests": "3",
		})
		if _, ok := errs["full_name"]; !ok {
			t.Error("expected error for missing full_name")
		}
		if _, ok := errs["email"]; !ok {
			t.Error("expected error for missing email")
		}
		if _, ok := errs["meal"]; !ok {
			t.Error("expected error for missing meal")
		}
		if _, ok := errs["guests"]; ok {
			t.Error("optional guests answer should not error")
		}
	})

	t.Run("constraint violations", func(t *testing.T) {
		errs := ValidateAnswers(fields, map[string]interface{}{
			"full_name": "A very long name",
			"guests":    "42",
			"email":     "not-an-email",
			"meal":      "fish",
		})
		for _, name := range []string{"full_name", "guests", "email", "meal"} {
			if _, ok := errs[name]; !ok {
				t.Errorf("expected error for %s", name)
			}
		}
	})

	t.Run("checkbox array membership", func(t *testing.T) {
		boxes := []FieldDefinition{
			{Name: "days", Label: "Days", FieldType: TypeCheckbox, Required: true,
				Options: mustOptions(t, []FieldOption{{Label: "Sat", Value: "sat"}, {Label: "Sun", Value: "sun"}})},
		}

		errs := ValidateAnswers(boxes, map[string]interface{}{
			"days": []interface{}{"sat", "sun"},
		})
		if len(errs) != 0 {
			t.Fatalf("valid checkbox selection rejected: %v", errs)
		}

		errs = ValidateAnswers(boxes, map[string]interface{}{
			"days": []interface{}{"sat", "mon"},
		})
		if _, ok := errs["days"]; !ok {
			t.Error("unknown checkbox value should be rejected")
		}
	})

	t.Run("unknown response keys are ignored", func(t *testing.T) {
		errs := ValidateAnswers(fields, map[string]interface{}{
			"full_name": "Asha",
			"guests":    "3",
			"email":     "asha@example.com",
			"meal":      "veg",
			"legacy":    "whatever",
		})
		if len(errs) != 0 {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})
}
