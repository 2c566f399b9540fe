package announcement

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/evently-hq/event-management-backend/config"
	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/registration"
	"github.com/evently-hq/event-management-backend/utils"
)

// BatchSize is how many recipients go out between quota checks
const BatchSize = 50

// Dispatcher consumes dispatch messages and performs the actual
// fan-out. One claim per announcement at a time; redeliveries and
// overlapping retries are dropped while a dispatch is running.
type Dispatcher struct {
	Repo     *Repository
	RegRepo  *registration.Repository
	AuthRepo auth.Repository
	Email    Sender
	WhatsApp Sender
	Quota    int
	guard    *inflightGuard
}

func NewDispatcher(repo *Repository, regRepo *registration.Repository, authRepo auth.Repository, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		Repo:     repo,
		RegRepo:  regRepo,
		AuthRepo: authRepo,
		Email:    EmailSender{},
		WhatsApp: NewWhatsAppSender(cfg),
		Quota:    cfg.AnnounceHourlyQuota,
		guard:    newInflightGuard(),
	}
}

// Run blocks reading the dispatch topic until ctx is cancelled
func (d *Dispatcher) Run(ctx context.Context) {
	reader := utils.NewAnnouncementReader()
	defer reader.Close()

	log.Println("📣 announcement dispatcher started")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("announcement dispatcher stopped")
				return
			}
			log.Printf("announcement dispatcher read error: %v", err)
			continue
		}

		var dm DispatchMessage
		if err := json.Unmarshal(msg.Value, &dm); err != nil {
			log.Printf("announcement dispatcher bad payload: %v", err)
			continue
		}

		d.Dispatch(ctx, dm.AnnouncementID)
	}
}

// Dispatch fans one announcement out to its audience. Safe to call
// concurrently with the same ID: later callers return immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, announcementID uint) {
	if !d.guard.TryBegin(announcementID) {
		return
	}
	defer d.guard.End(announcementID)

	a, err := d.Repo.GetByID(announcementID)
	if err != nil {
		log.Printf("announcement %d not found: %v", announcementID, err)
		return
	}
	if a.Status == StatusSent {
		return
	}

	recipients, err := d.resolveRecipients(a)
	if err != nil {
		_ = d.Repo.MarkFailed(a.ID, "recipient lookup failed: "+err.Error())
		return
	}
	if len(recipients) == 0 {
		_ = d.Repo.MarkSent(a.ID, 0)
		return
	}

	sender := d.Email
	if a.Channel == ChannelWhatsApp {
		sender = d.WhatsApp
	}

	sent := 0
	for start := 0; start < len(recipients); start += BatchSize {
		end := start + BatchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		batch := recipients[start:end]

		ok, err := utils.IncrAnnounceQuota(a.EventID, len(batch), d.Quota)
		if err != nil {
			_ = d.Repo.MarkFailed(a.ID, "quota check failed: "+err.Error())
			return
		}
		if !ok {
			_ = d.Repo.MarkFailed(a.ID, fmt.Sprintf("hourly quota reached after %d recipients", sent))
			return
		}

		for _, recipient := range batch {
			if ctx.Err() != nil {
				_ = d.Repo.MarkFailed(a.ID, "dispatch interrupted")
				return
			}
			if err := sender.Send(recipient, a.Subject, a.Body); err != nil {
				log.Printf("announcement %d delivery to %s failed: %v", a.ID, recipient, err)
				continue
			}
			sent++
		}
	}

	if err := d.Repo.MarkSent(a.ID, sent); err != nil {
		log.Printf("announcement %d status update failed: %v", a.ID, err)
	}
}

func (d *Dispatcher) resolveRecipients(a *Announcement) ([]string, error) {
	userIDs, err := d.RegRepo.Recipients(a.EventID, a.Audience)
	if err != nil {
		return nil, err
	}
	if a.Channel == ChannelWhatsApp {
		return d.AuthRepo.GetUserPhonesByIDs(userIDs)
	}
	return d.AuthRepo.GetUserEmailsByIDs(userIDs)
}
