// Package notification sends booking confirmations. Delivery is
// best-effort: the booking engine logs failures and never blocks on mail.
package notification

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ayursutra/clinic-api/internal/config"
	"github.com/ayursutra/clinic-api/internal/model"
)

type Service struct {
	dialer *gomail.Dialer
	from   string
}

// NewService returns nil when SMTP is disabled; callers treat a nil
// notifier as "no mail".
func NewService(cfg config.SMTPConfig) *Service {
	if !cfg.Enabled {
		return nil
	}
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *Service) BookingConfirmed(_ context.Context, apt *model.AppointmentDetail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", apt.PatientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Booked: %s on %s", apt.Title, apt.StartTime.Format("Mon, 2 Jan 2006")))
	m.SetBody("text/plain", confirmationBody(apt))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

func confirmationBody(apt *model.AppointmentDetail) string {
	body := fmt.Sprintf(
		"Namaste %s,\n\nYour session %q with %s is confirmed for %s to %s.\n",
		apt.PatientName,
		apt.Title,
		apt.PractitionerName,
		apt.StartTime.Format(time.RFC1123),
		apt.EndTime.Format(time.Kitchen),
	)
	if apt.ResourceName != nil {
		body += fmt.Sprintf("Location: %s", *apt.ResourceName)
		if apt.ResourceLocation != nil && *apt.ResourceLocation != "" {
			body += fmt.Sprintf(" (%s)", *apt.ResourceLocation)
		}
		body += "\n"
	}
	body += "\nPlease arrive ten minutes early and avoid heavy meals beforehand.\n"
	return body
}
