// Package notify sends best-effort email alerts when the line stops.
// Delivery runs detached from the state transition that triggered it;
// failures are logged and never retried or surfaced to the operator.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/shift"
)

// fallbackReason is the recipient-map key used when no mapping exists for
// the selected stop reason.
const fallbackReason = "Other"

// sendTimeout bounds one SMTP delivery attempt.
const sendTimeout = 10 * time.Second

// Mailer routes stop notifications to the recipient configured for the
// stop reason, falling back to the "Other" address.
type Mailer struct {
	cfg    *config.Store
	logger *zap.Logger

	// send is swapped out in tests to avoid a live SMTP exchange.
	send func(cfg *config.EmailConfig, recipient, subject, body string) error
}

// NewMailer creates a Mailer reading SMTP settings from the config store.
func NewMailer(cfg *config.Store, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}
	m.send = m.deliver
	return m
}

// Notify sends the stop alert for the given reason. It blocks for the
// delivery attempt and is meant to be invoked on a detached goroutine.
func (m *Mailer) Notify(reason string, at time.Time) {
	cfg := m.cfg.Snapshot()
	if cfg.Email == nil {
		m.logger.Warn("Email configuration not found")
		return
	}

	recipient, ok := cfg.Email.Recipients[reason]
	if !ok {
		recipient, ok = cfg.Email.Recipients[fallbackReason]
	}
	if !ok || recipient == "" {
		m.logger.Warn("No recipient configured for stop reason",
			zap.String("reason", reason))
		return
	}

	subject := fmt.Sprintf("Machine %s Stopped - %s", cfg.MachineID, reason)
	body := fmt.Sprintf(`Machine Stop Notification

Machine ID: %s
Stop Reason: %s
Stop Time: %s
Current Shift: %s

This is an automated notification.
`,
		cfg.MachineID,
		reason,
		at.Format("2006-01-02 15:04:05"),
		shift.Resolve(at, cfg.ShiftWindows()),
	)

	if err := m.send(cfg.Email, recipient, subject, body); err != nil {
		m.logger.Error("Failed to send email notification", zap.Error(err))
		return
	}

	m.logger.Info("Email notification sent",
		zap.String("recipient", recipient),
		zap.String("reason", reason))
}

// deliver performs one STARTTLS SMTP exchange.
func (m *Mailer) deliver(email *config.EmailConfig, recipient, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(email.SMTPHost,
		mail.WithPort(email.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(email.From),
		mail.WithPassword(email.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return client.DialAndSendWithContext(ctx, msg)
}
