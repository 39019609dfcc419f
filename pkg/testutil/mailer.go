package testutil

import (
	"context"

	"github.com/luckdraw/backend/pkg/errorx"
)

type MockMailer struct {
	SendFunc func(ctx context.Context, toAddress, subject, htmlBody string) (string, error)

	SentCount int
}

func (m *MockMailer) Send(ctx context.Context, toAddress, subject, htmlBody string) (string, error) {
	m.SentCount++
	if m.SendFunc != nil {
		return m.SendFunc(ctx, toAddress, subject, htmlBody)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}
