// Package notify delivers email, SMS, and in-app notifications on a
// fire-and-forget basis. Delivery failures are logged and never surfaced
// to the caller.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/infrastructure/mailer"
	"github.com/jobboard-api/internal/infrastructure/sns"
	"github.com/jobboard-api/internal/pkg/id"
)

const sendTimeout = 10 * time.Second

// Dispatcher fans out user-facing notifications in the background.
type Dispatcher interface {
	// OTP emails a one-time code to the given address.
	OTP(email, code string)
	// ApplicationStatus records an in-app notification for the candidate
	// and emails (and, when a phone number exists, texts) the status change.
	ApplicationStatus(c *domain.Candidate, j *domain.Job, a *domain.Application)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type dispatcher struct {
	mail          mailer.Mailer
	sms           sns.SMSSender // nil when SNS is not configured
	notifications notificationStore
	log           *slog.Logger
}

func NewDispatcher(mail mailer.Mailer, sms sns.SMSSender, notifications notificationStore, log *slog.Logger) Dispatcher {
	return &dispatcher{mail: mail, sms: sms, notifications: notifications, log: log}
}

func (d *dispatcher) OTP(email, code string) {
	go func() {
		body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
		if err := d.mail.Send(email, "Your verification code", body); err != nil {
			d.log.Warn("send otp email failed", "email", email, "error", err)
		}
	}()
}

func (d *dispatcher) ApplicationStatus(c *domain.Candidate, j *domain.Job, a *domain.Application) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		now := time.Now().UTC()
		message := fmt.Sprintf("Your application for %q is now %s.", j.Title, a.Status)
		n := &domain.Notification{
			NotificationID: id.New(),
			CandidateID:    c.CandidateID,
			ApplicationID:  &a.ApplicationID,
			Message:        message,
			Read:           false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := d.notifications.Put(ctx, n); err != nil {
			d.log.Warn("store notification failed", "candidate_id", c.CandidateID, "error", err)
		}

		if err := d.mail.Send(c.Email, "Application update", message); err != nil {
			d.log.Warn("send status email failed", "email", c.Email, "error", err)
		}

		if d.sms != nil && c.Phone != nil && *c.Phone != "" {
			if err := d.sms.SendSMS(ctx, *c.Phone, message); err != nil {
				d.log.Warn("send status sms failed", "candidate_id", c.CandidateID, "error", err)
			}
		}
	}()
}
