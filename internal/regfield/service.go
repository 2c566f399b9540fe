package regfield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

// Service owns the custom registration field collection of each event
type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, eventSvc *event.Service, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, EventSvc: eventSvc, AuditSvc: auditSvc}
}

// requireEvent confirms the caller owns the event before any field operation
func (s *Service) requireEvent(eventID uint, accessContext middleware.AccessContext) error {
	_, err := s.EventSvc.GetEventByID(eventID, accessContext)
	return err
}

// ===========================
// 📄 List fields with registry tokens and the soft-cap advisory
func (s *Service) ListFields(eventID uint, accessContext middleware.AccessContext) (*FieldListResponse, error) {
	if err := s.requireEvent(eventID, accessContext); err != nil {
		return nil, err
	}

	fields, err := s.Repo.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}

	resp := &FieldListResponse{Items: make([]FieldView, 0, len(fields))}
	for i := range fields {
		opts, _ := fields[i].DecodeOptions()
		resp.Items = append(resp.Items, FieldView{
			FieldDefinition: fields[i],
			OptionList:      opts,
			Icon:            TypeIcon(fields[i].FieldType),
			Color:           TypeColor(fields[i].FieldType),
		})
	}

	if len(fields) > SoftFieldCap {
		resp.Warning = fmt.Sprintf("this form has %d fields; long forms reduce registration completion", len(fields))
	}

	return resp, nil
}

// ===========================
// 🎯 Create field
func (s *Service) CreateField(eventID uint, req *CreateFieldRequest, accessContext middleware.AccessContext, ip string) (*FieldDefinition, error) {
	if err := s.requireEvent(eventID, accessContext); err != nil {
		return nil, err
	}
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	// Non-choice types silently drop any options the client sent
	options := req.Options
	if !IsChoiceType(req.Type) {
		options = nil
	}

	if err := ValidateDefinition(req.Type, req.Label, options, req.MaxLength, req.Min, req.Max); err != nil {
		return nil, err
	}

	// The machine name is derived from the label unless the client sent
	// one explicitly; either way it goes through the same normalization
	source := req.Label
	if req.Name != "" {
		source = req.Name
	}
	name := DeriveFieldName(source)
	if name == "" {
		return nil, errors.New("label must contain at least one alphanumeric character")
	}

	exists, err := s.Repo.NameExists(eventID, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("a field named %q already exists on this form", name)
	}

	position, err := s.Repo.NextDisplayOrder(eventID)
	if err != nil {
		return nil, err
	}

	field := &FieldDefinition{
		EventID:      eventID,
		Name:         name,
		Label:        req.Label,
		FieldType:    req.Type,
		Placeholder:  req.Placeholder,
		Required:     req.Required,
		DisplayOrder: position,
	}

	if req.Type == TypeText || req.Type == TypeTextarea {
		field.MaxLength = req.MaxLength
	}
	if req.Type == TypeNumber {
		field.Min = req.Min
		field.Max = req.Max
	}

	if len(options) > 0 {
		raw, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		field.Options = datatypes.JSON(raw)
	}

	if err := s.Repo.Create(field); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELD_CREATED",
			map[string]interface{}{"label": req.Label, "type": req.Type, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELD_CREATED",
		map[string]interface{}{"field_id": field.ID, "name": field.Name, "type": field.FieldType}, ip, "success")

	return field, nil
}

// ===========================
// 🛠 Update field
func (s *Service) UpdateField(eventID, fieldID uint, req *UpdateFieldRequest, accessContext middleware.AccessContext, ip string) (*FieldDefinition, error) {
	if err := s.requireEvent(eventID, accessContext); err != nil {
		return nil, err
	}
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	field, err := s.Repo.GetByID(fieldID, eventID)
	if err != nil {
		return nil, errors.New("field not found")
	}

	options := req.Options
	if !IsChoiceType(req.Type) {
		// switching away from a choice type discards entered options
		options = nil
	}

	if err := ValidateDefinition(req.Type, req.Label, options, req.MaxLength, req.Min, req.Max); err != nil {
		return nil, err
	}

	// An explicit name wins (normalized); otherwise the stored name is kept
	name := field.Name
	if req.Name != "" {
		name = DeriveFieldName(req.Name)
		if name == "" {
			return nil, errors.New("name must contain at least one alphanumeric character")
		}
	}

	exists, err := s.Repo.NameExists(eventID, name, fieldID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("a field named %q already exists on this form", name)
	}

	field.Name = name
	field.Label = req.Label
	field.FieldType = req.Type
	field.Placeholder = req.Placeholder
	field.Required = req.Required

	field.MaxLength = nil
	field.Min = nil
	field.Max = nil
	if req.Type == TypeText || req.Type == TypeTextarea {
		field.MaxLength = req.MaxLength
	}
	if req.Type == TypeNumber {
		field.Min = req.Min
		field.Max = req.Max
	}

	field.Options = nil
	if len(options) > 0 {
		raw, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		field.Options = datatypes.JSON(raw)
	}

	if err := s.Repo.Update(field); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELD_UPDATED",
			map[string]interface{}{"field_id": fieldID, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELD_UPDATED",
		map[string]interface{}{"field_id": field.ID, "name": field.Name, "type": field.FieldType}, ip, "success")

	return field, nil
}

// ===========================
// ❌ Delete field
func (s *Service) DeleteField(eventID, fieldID uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.requireEvent(eventID, accessContext); err != nil {
		return err
	}
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	field, err := s.Repo.GetByID(fieldID, eventID)
	if err != nil {
		return errors.New("field not found")
	}

	if err := s.Repo.Delete(fieldID, eventID); err != nil {
		return err
	}

	// Close the gap left by the removed field
	remaining, err := s.Repo.ListByEvent(eventID)
	if err != nil {
		log.Printf("field order compaction skipped for event %d: %v", eventID, err)
	} else {
		ids := make([]uint, 0, len(remaining))
		for i := range remaining {
			ids = append(ids, remaining[i].ID)
		}
		if err := s.Repo.Reorder(eventID, ids); err != nil {
			log.Printf("field order compaction failed for event %d: %v", eventID, err)
		}
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELD_DELETED",
		map[string]interface{}{"field_id": fieldID, "name": field.Name}, ip, "success")

	return nil
}

// ===========================
// 🔀 Reorder - persists the full new ordering in one call.
// A request matching the current order is a no-op with no write.
func (s *Service) ReorderFields(eventID uint, req *ReorderRequest, accessContext middleware.AccessContext, ip string) error {
	if err := s.requireEvent(eventID, accessContext); err != nil {
		return err
	}
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	fields, err := s.Repo.ListByEvent(eventID)
	if err != nil {
		return err
	}

	current := make([]uint, 0, len(fields))
	for i := range fields {
		current = append(current, fields[i].ID)
	}

	changed, err := PlanReorder(current, req.IDs)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.Repo.Reorder(eventID, req.IDs); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELDS_REORDERED",
			map[string]interface{}{"ids": req.IDs, "error": err.Error()}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "FIELDS_REORDERED",
		map[string]interface{}{"ids": req.IDs}, ip, "success")

	return nil
}

// FieldsForEvent exposes the raw definitions for answer validation at
// registration time
func (s *Service) FieldsForEvent(eventID uint) ([]FieldDefinition, error) {
	return s.Repo.ListByEvent(eventID)
}
