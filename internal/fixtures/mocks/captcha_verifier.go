package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type CaptchaVerifier struct {
	mock.Mock
}

func (m *CaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	return m.Called(ctx, token, remoteIP).Error(0)
}
