package regfield

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Closed set of field type tags for custom registration questions
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeNumber   = "number"
	TypeEmail    = "email"
	TypeTel      = "tel"
	TypeURL      = "url"
	TypeDate     = "date"
	TypeDropdown = "dropdown"
	TypeRadio    = "radio"
	TypeCheckbox = "checkbox"
	TypeFile     = "file"
)

// SoftFieldCap is advisory only; list responses carry a warning past it
const SoftFieldCap = 15

// FieldOption is one selectable option of a choice-type field.
// Options are positional, not identity-bearing.
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDefinition is one custom registration question of an event
type FieldDefinition struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EventID      uint           `gorm:"not null;index;uniqueIndex:uq_fields_event_name,priority:1" json:"event_id"`
	Name         string         `gorm:"size:100;not null;uniqueIndex:uq_fields_event_name,priority:2" json:"name"`
	Label        string         `gorm:"size:255;not null" json:"label"`
	FieldType    string         `gorm:"size:30;not null" json:"type"`
	Placeholder  string         `gorm:"size:255" json:"placeholder"`
	Required     bool           `gorm:"default:false" json:"required"`
	MaxLength    *int           `json:"max_length,omitempty"` // text/textarea only
	Min          *float64       `json:"min,omitempty"`        // number only
	Max          *float64       `json:"max,omitempty"`        // number only
	Options      datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	DisplayOrder int            `gorm:"not null;default:0;index" json:"order"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FieldDefinition) TableName() string {
	return "registration_fields"
}

// DecodeOptions unmarshals the stored option list; a missing column yields nil
func (f *FieldDefinition) DecodeOptions() ([]FieldOption, error) {
	if len(f.Options) == 0 {
		return nil, nil
	}
	var opts []FieldOption
	if err := json.Unmarshal(f.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// ===========================
// Request / response shapes

type CreateFieldRequest struct {
	Label       string        `json:"label" binding:"required"`
	Name        string        `json:"name"` // optional; derived from label when empty
	Type        string        `json:"type" binding:"required"`
	Placeholder string        `json:"placeholder"`
	Required    bool          `json:"required"`
	MaxLength   *int          `json:"max_length,omitempty"`
	Min         *float64      `json:"min,omitempty"`
	Max         *float64      `json:"max,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
}

type UpdateFieldRequest struct {
	Label       string        `json:"label" binding:"required"`
	Name        string        `json:"name"` // optional; stored name kept when empty
	Type        string        `json:"type" binding:"required"`
	Placeholder string        `json:"placeholder"`
	Required    bool          `json:"required"`
	MaxLength   *int          `json:"max_length,omitempty"`
	Min         *float64      `json:"min,omitempty"`
	Max         *float64      `json:"max,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
}

// ReorderRequest carries the full new ordering as a sequence of field ids
type ReorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// FieldListResponse is the list envelope; Warning is set past the soft cap
type FieldListResponse struct {
	Items   []FieldView `json:"items"`
	Warning string      `json:"warning,omitempty"`
}

// FieldView is a FieldDefinition with options decoded and registry
// presentation tokens attached
type FieldView struct {
	FieldDefinition
	OptionList []FieldOption `json:"option_list,omitempty"`
	Icon       string        `json:"icon"`
	Color      string        `json:"color"`
}
