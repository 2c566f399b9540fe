package ticket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

func listTicketsRouter(db *gorm.DB, accessContext middleware.AccessContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(NewRepository(db), event.NewService(event.NewRepository(db), nil), nil))
	r := gin.New()
	r.GET("/events/:event_id/tickets", func(c *gin.Context) {
		c.Set("access_context", accessContext)
	}, h.ListTickets)
	return r
}

func TestListTicketsSeparatesEmptyStateFromFailure(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&event.Event{}, &Ticket{}); err != nil {
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
	if err := db.Create(&Ticket{EventID: ev.ID, Name: "General", Capacity: 100, IsActive: true}).Error; err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	owner := uint(1)
	stranger := uint(2)

	doList := func(r *gin.Engine) (*httptest.ResponseRecorder, struct {
		Items []Ticket `json:"items"`
		Error string   `json:"error"`
	}) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events/1/tickets", nil)
		r.ServeHTTP(w, req)
		var body struct {
			Items []Ticket `json:"items"`
			Error string   `json:"error"`
		}
		json.Unmarshal(w.Body.Bytes(), &body)
		return w, body
	}

	t.Run("in-scope caller gets the rows", func(t *testing.T) {
		r := listTicketsRouter(db, middleware.AccessContext{UserID: 1, RoleName: "organizer", OrganizerID: &owner, PermissionType: "full"})
		w, body := doList(r)
		if w.Code != http.StatusOK || len(body.Items) != 1 {
			t.Fatalf("status=%d items=%d, want 200 with 1 item", w.Code, len(body.Items))
		}
	})

	t.Run("out-of-scope event is an empty state", func(t *testing.T) {
		r := listTicketsRouter(db, middleware.AccessContext{UserID: 2, RoleName: "organizer", OrganizerID: &stranger, PermissionType: "full"})
		w, body := doList(r)
		if w.Code != http.StatusOK || len(body.Items) != 0 {
			t.Fatalf("status=%d items=%d, want 200 with no items", w.Code, len(body.Items))
		}
	})

	t.Run("storage failure surfaces as an error", func(t *testing.T) {
		if err := db.Migrator().DropTable(&Ticket{}); err != nil {
			t.Fatalf("drop tickets table: %v", err)
		}
		r := listTicketsRouter(db, middleware.AccessContext{UserID: 1, RoleName: "organizer", OrganizerID: &owner, PermissionType: "full"})
		w, body := doList(r)
		if w.Code != http.StatusInternalServerError || body.Error == "" {
			t.Fatalf("status=%d error=%q, want 500 with an error message", w.Code, body.Error)
		}
	})
}
