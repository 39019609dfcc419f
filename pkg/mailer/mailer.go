package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/luckdraw/backend/config"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured indicates the mail transport cannot be constructed because
// credentials are missing. It is distinct from a delivery-time failure so
// callers can tell a disabled feature apart from a transient error.
var ErrNotConfigured = errors.New("mail transport is not configured")

type Mailer interface {
	// Send delivers a single html message and returns the message id on
	// success.
	Send(ctx context.Context, toAddress, subject, htmlBody string) (string, error)
}

type smtpMailer struct {
	cfg    config.MailConfigs
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.MailConfigs) (Mailer, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}

	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}, nil
}

func (m *smtpMailer) Send(ctx context.Context, toAddress, subject, htmlBody string) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.cfg.Host)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("To", toAddress)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", htmlBody)

	type result struct {
		err error
	}

	done := make(chan result, 1)
	go func() {
		done <- result{err: m.dialer.DialAndSend(msg)}
	}()

	// The smtp dialer has no context support, so honor cancellation here and
	// let the goroutine finish in the background.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}

		return messageID, nil
	}
}
