package registration

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/evently-hq/event-management-backend/internal/ticket"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&ticket.Ticket{}, &Registration{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSettleOrderMovesCountersOnce(t *testing.T) {
	db := openTestDB(t)

	tkt := &ticket.Ticket{EventID: 1, Name: "General", Price: 250, Capacity: 10, IsActive: true}
	if err := db.Create(tkt).Error; err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	reg := &Registration{
		EventID:     1,
		TicketID:    tkt.ID,
		UserID:      7,
		Amount:      250,
		Status:      StatusPending,
		OrderID:     "order_100",
		CheckinCode: NewCheckinCode(),
	}
	if err := db.Create(reg).Error; err != nil {
		t.Fatalf("create registration: %v", err)
	}

	svc := &Service{Repo: NewRepository(db), TicketRepo: ticket.NewRepository(db)}

	// two verify calls that both read the row while it was still pending
	claimed, err := svc.settleOrder(reg, "order_100", "pay_1")
	if err != nil || !claimed {
		t.Fatalf("first settle: claimed=%v err=%v", claimed, err)
	}
	claimed, err = svc.settleOrder(reg, "order_100", "pay_1")
	if err != nil {
		t.Fatalf("second settle: %v", err)
	}
	if claimed {
		t.Fatal("second settle claimed an already-confirmed order")
	}

	var got ticket.Ticket
	if err := db.First(&got, tkt.ID).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if got.Sold != 1 {
		t.Fatalf("sold = %d after settling one order twice, want 1", got.Sold)
	}

	fresh, err := svc.Repo.GetByOrderID("order_100")
	if err != nil {
		t.Fatalf("reload registration: %v", err)
	}
	if fresh.Status != StatusConfirmed || fresh.PaymentID != "pay_1" {
		t.Fatalf("registration = %s/%s, want %s/pay_1", fresh.Status, fresh.PaymentID, StatusConfirmed)
	}
}

func TestDuplicateLiveRegistrationRejected(t *testing.T) {
	db := openTestDB(t)

	first := &Registration{EventID: 1, TicketID: 1, UserID: 7, Status: StatusConfirmed, CheckinCode: NewCheckinCode()}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("create first: %v", err)
	}

	dup := &Registration{EventID: 1, TicketID: 1, UserID: 7, Status: StatusPending, CheckinCode: NewCheckinCode()}
	if err := db.Create(dup).Error; err == nil {
		t.Fatal("second live registration for the same attendee was accepted")
	}

	// a cancelled row must not block registering again
	if err := db.Model(first).Update("status", StatusCancelled).Error; err != nil {
		t.Fatalf("cancel first: %v", err)
	}
	again := &Registration{EventID: 1, TicketID: 1, UserID: 7, Status: StatusConfirmed, CheckinCode: NewCheckinCode()}
	if err := db.Create(again).Error; err != nil {
		t.Fatalf("register again after cancellation: %v", err)
	}
}
