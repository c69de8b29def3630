package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, phone, msg string) error {
	return m.Called(ctx, phone, msg).Error(0)
}

func TestSendCode_EmailGoesToMailer(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", "a@x.com", "Password reset code", mock.MatchedBy(func(body string) bool {
		return assert.Contains(t, body, "123456") && assert.Contains(t, body, "10 minutes")
	})).Return(nil)

	d := NewCodeDispatcher(ml, nil)
	err := d.SendCode(context.Background(), "a@x.com", "123456", time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	ml.AssertExpectations(t)
}

func TestSendCode_PhoneGoesToSMS(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, "+15551234567", mock.MatchedBy(func(msg string) bool {
		return assert.Contains(t, msg, "654321")
	})).Return(nil)

	d := NewCodeDispatcher(nil, sms)
	err := d.SendCode(context.Background(), "+15551234567", "654321", time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	sms.AssertExpectations(t)
}

func TestSendCode_PhoneWithoutSender(t *testing.T) {
	d := NewCodeDispatcher(&mockMailer{}, nil)
	err := d.SendCode(context.Background(), "+15551234567", "654321", time.Now().Add(time.Minute))
	assert.ErrorContains(t, err, "sms delivery not configured")
}

func TestSendCode_PropagatesMailerError(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	d := NewCodeDispatcher(ml, nil)
	err := d.SendCode(context.Background(), "a@x.com", "123456", time.Now().Add(time.Minute))
	assert.ErrorContains(t, err, "smtp down")
}
