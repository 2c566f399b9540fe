package regfield

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

type nopAudit struct{}

func (nopAudit) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}

func (nopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}

func (nopAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

func TestDeleteFieldCompactsDisplayOrder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&event.Event{}, &FieldDefinition{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// the event lookup counts live registrations as a side effect
	if err := db.Exec("CREATE TABLE registrations (id INTEGER PRIMARY KEY, event_id INTEGER, status TEXT)").Error; err != nil {
		t.Fatalf("create registrations table: %v", err)
	}

	now := time.Now()
	ev := &event.Event{OrganizerID: 1, Title: "DevConf", Mode: event.ModeOnline, StartTime: now, EndTime: now.Add(time.Hour), CreatedBy: 1, IsActive: true}
	if err := db.Create(ev).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}

	names := []string{"company", "dietary", "tshirt_size"}
	fields := make([]FieldDefinition, len(names))
	for i, name := range names {
		fields[i] = FieldDefinition{EventID: ev.ID, Name: name, Label: name, FieldType: TypeText, DisplayOrder: i}
		if err := db.Create(&fields[i]).Error; err != nil {
			t.Fatalf("create field %s: %v", name, err)
		}
	}

	svc := NewService(NewRepository(db), event.NewService(event.NewRepository(db), nopAudit{}), nopAudit{})
	org := uint(1)
	accessContext := middleware.AccessContext{UserID: 1, RoleName: "organizer", OrganizerID: &org, PermissionType: "full"}

	if err := svc.DeleteField(ev.ID, fields[1].ID, accessContext, "127.0.0.1"); err != nil {
		t.Fatalf("delete field: %v", err)
	}

	remaining, err := svc.Repo.ListByEvent(ev.ID)
	if err != nil {
		t.Fatalf("list fields: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("got %d fields after delete, want 2", len(remaining))
	}
	for i, f := range remaining {
		if f.DisplayOrder != i {
			t.Errorf("field %s has display order %d, want %d", f.Name, f.DisplayOrder, i)
		}
	}
}
