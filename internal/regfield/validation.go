package regfield

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveFieldName normalizes a label into the machine key stored as the
// field's name: lower-case, alphanumeric and underscore only, runs of
// other characters collapsed into a single underscore.
func DeriveFieldName(s string) string {
	name := strings.ToLower(s)
	name = nonAlnum.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// ValidateDefinition applies the shared rule table for field drafts.
// Choice types must carry at least one option; other types have their
// options stripped by the caller rather than rejected.
func ValidateDefinition(fieldType string, label string, options []FieldOption, maxLength *int, min, max *float64) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label is required")
	}

	if !IsKnownType(fieldType) {
		return fmt.Errorf("unknown field type: %s", fieldType)
	}

	if IsChoiceType(fieldType) && len(options) == 0 {
		return errors.New("choice fields require at least one option")
	}

	if maxLength != nil {
		if fieldType != TypeText && fieldType != TypeTextarea {
			return errors.New("max_length only applies to text fields")
		}
		if *maxLength < 1 {
			return errors.New("max_length must be positive")
		}
	}

	if (min != nil || max != nil) && fieldType != TypeNumber {
		return errors.New("min/max only apply to number fields")
	}
	if min != nil && max != nil && *min > *max {
		return errors.New("min cannot exceed max")
	}

	return nil
}

// ValidateAnswers checks a registrant's responses against an event's
// field definitions. The returned map is field name -> message; an empty
// map means the submission is valid. Unknown response keys are ignored.
func ValidateAnswers(fields []FieldDefinition, responses map[string]interface{}) map[string]string {
	errs := make(map[string]string)

	for i := range fields {
		f := &fields[i]
		raw, present := responses[f.Name]

		str := ""
		if present {
			str = strings.TrimSpace(fmt.Sprint(raw))
		}

		if !present || str == "" {
			if f.Required && f.FieldType != TypeCheckbox {
				errs[f.Name] = fmt.Sprintf("%s is required", f.Label)
			}
			if f.Required && f.FieldType == TypeCheckbox {
				errs[f.Name] = fmt.Sprintf("%s requires at least one selection", f.Label)
			}
			continue
		}

		switch f.FieldType {
		case TypeText, TypeTextarea:
			if f.MaxLength != nil && len(str) > *f.MaxLength {
				errs[f.Name] = fmt.Sprintf("%s must be at most %d characters", f.Label, *f.MaxLength)
			}

		case TypeNumber:
			n, err := strconv.ParseFloat(str, 64)
			if err != nil {
				errs[f.Name] = fmt.Sprintf("%s must be a number", f.Label)
				continue
			}
			if f.Min != nil && n < *f.Min {
				errs[f.Name] = fmt.Sprintf("%s must be at least %v", f.Label, *f.Min)
			}
			if f.Max != nil && n > *f.Max {
				errs[f.Name] = fmt.Sprintf("%s must be at most %v", f.Label, *f.Max)
			}

		case TypeEmail:
			if _, err := mail.ParseAddress(str); err != nil {
				errs[f.Name] = fmt.Sprintf("%s must be a valid email address", f.Label)
			}

		case TypeURL:
			u, err := url.Parse(str)
			if err != nil || u.Scheme == "" || u.Host == "" {
				errs[f.Name] = fmt.Sprintf("%s must be a valid URL", f.Label)
			}

		case TypeDate:
			if _, err := time.Parse("2006-01-02", str); err != nil {
				errs[f.Name] = fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.Label)
			}

		case TypeDropdown, TypeRadio:
			if !optionValueExists(f, str) {
				errs[f.Name] = fmt.Sprintf("%s has an invalid selection", f.Label)
			}

		case TypeCheckbox:
			// checkbox answers arrive as an array of selected values
			values, ok := raw.([]interface{})
			if !ok {
				// single string is tolerated for a one-box checkbox
				values = []interface{}{raw}
			}
			for _, v := range values {
				if !optionValueExists(f, strings.TrimSpace(fmt.Sprint(v))) {
					errs[f.Name] = fmt.Sprintf("%s has an invalid selection", f.Label)
					break
				}
			}
		}
	}

	return errs
}

func optionValueExists(f *FieldDefinition, value string) bool {
	opts, err := f.DecodeOptions()
	if err != nil {
		return false
	}
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
