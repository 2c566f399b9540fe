package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	smtpUsername  = os.Getenv("SMTP_USERNAME")
	smtpPassword  = os.Getenv("SMTP_PASSWORD")
	smtpFromName  = os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	smtpTimeout   = 10 * time.Second // Timeout for SMTP connection

	// BaseFrontendURL is the default console origin for links in emails
	BaseFrontendURL = "http://localhost:5173"
)

// ======================
// Low-level sendEmail with explicit StartTLS handling
// ======================
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	// Dial plain first, then upgrade; tls.Dial directly breaks on servers
	// that only speak STARTTLS on 587
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	from := fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// ======================
// 🎟 Registration confirmation with the attendee's check-in code
// ======================
func SendRegistrationConfirmation(to, eventTitle, checkinCode string) error {
	subject := fmt.Sprintf("You're registered for %s", eventTitle)
	body := fmt.Sprintf(
		`<h2>Registration confirmed</h2>
<p>You are registered for <b>%s</b>.</p>
<p>Your check-in code is:</p>
<h1 style="letter-spacing:2px">%s</h1>
<p>Show this code (or its QR) at the entrance.</p>`,
		eventTitle, checkinCode,
	)
	return sendEmail(to, subject, body)
}

// ======================
// 🔁 Password reset link
// ======================
func SendResetLink(to, token string) error {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = BaseFrontendURL
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	body := fmt.Sprintf(
		`<p>We received a request to reset your password.</p>
<p><a href="%s">Reset your password</a> (valid for 15 minutes).</p>
<p>If you did not ask for this, ignore this email.</p>`,
		link,
	)
	return sendEmail(to, "Reset your password", body)
}

// ======================
// 🔐 One-time check-in code mail
// ======================
func SendCheckinOTP(to, eventTitle, otp string) error {
	subject := fmt.Sprintf("Your check-in code for %s", eventTitle)
	body := fmt.Sprintf(
		`<p>Your one-time check-in code for <b>%s</b> is:</p>
<h1 style="letter-spacing:4px">%s</h1>
<p>The code expires in 5 minutes.</p>`,
		eventTitle, otp,
	)
	return sendEmail(to, subject, body)
}

// ======================
// 📣 Announcement mail
// ======================
func SendAnnouncementEmail(to, subject, body string) error {
	return sendEmail(to, subject, body)
}
