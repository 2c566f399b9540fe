package announcement

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/evently-hq/event-management-backend/config"
	"github.com/evently-hq/event-management-backend/utils"
)

// Sender delivers one announcement to one recipient address. The
// dispatcher fans a batch out over whichever implementation matches
// the announcement's channel.
type Sender interface {
	Send(recipient, subject, body string) error
}

// EmailSender delivers over the shared SMTP transport
type EmailSender struct{}

func (EmailSender) Send(recipient, subject, body string) error {
	return utils.SendAnnouncementEmail(recipient, subject, body)
}

// WhatsAppSender delivers through the configured provider API
type WhatsAppSender struct {
	APIURL string
	Token  string
	From   string
	Client *http.Client
}

func NewWhatsAppSender(cfg *config.Config) *WhatsAppSender {
	return &WhatsAppSender{
		APIURL: cfg.WhatsAppAPIURL,
		Token:  cfg.WhatsAppAPIToken,
		From:   cfg.WhatsAppSender,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WhatsAppSender) Send(recipient, subject, body string) error {
	if w.APIURL == "" || w.Token == "" {
		return errors.New("whatsapp provider not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"from": w.From,
		"to":   recipient,
		"body": fmt.Sprintf("*%s*\n\n%s", subject, body),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, w.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.Token)

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp provider returned %d", resp.StatusCode)
	}
	return nil
}
