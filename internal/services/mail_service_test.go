package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	cfg SMTPConfig
	to  string
	msg string
}

func newCapturingMail(err error) (*smtpMailService, *[]capturedMail) {
	var sent []capturedMail
	svc := newSMTPMailService(SMTPConfig{
		Host:       "smtp.hospital.test",
		Port:       587,
		Username:   "mailer",
		Password:   "app-password",
		From:       "no-reply@hospital.test",
		FromName:   "Logística Hospitalar",
		AppName:    "HospiLog",
		AppBaseURL: "https://hospilog.test/",
	}, nil, func(cfg SMTPConfig, to string, msg []byte) error {
		if err != nil {
			return err
		}
		sent = append(sent, capturedMail{cfg: cfg, to: to, msg: string(msg)})
		return nil
	})
	return svc, &sent
}

func TestSendOtpCodeRendersCode(t *testing.T) {
	svc, sent := newCapturingMail(nil)

	require.NoError(t, svc.SendOtpCode("nurse@hospital.test", "493021", 5*time.Minute))
	require.Len(t, *sent, 1)
	msg := (*sent)[0].msg

	assert.Equal(t, "nurse@hospital.test", (*sent)[0].to)
	assert.Contains(t, msg, "493021")
	assert.Contains(t, msg, "expires in 5 minutes")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "=?UTF-8?b?", "non-ASCII display name is encoded")
}

func TestResetMailLinksToFrontend(t *testing.T) {
	svc, sent := newCapturingMail(nil)

	require.NoError(t, svc.SendMailToResetPassword("a@b.com", "tok en"))
	assert.Contains(t, (*sent)[0].msg, "https://hospilog.test/reset-password?token=tok+en")
}

func TestPlainTextPartIsNotEscaped(t *testing.T) {
	svc, sent := newCapturingMail(nil)

	require.NoError(t, svc.SendMailToNotifyUser("a@b.com", "Stock & supply", `Ward "A" isn't ready`, "Open", "https://hospilog.test/orders?id=1&tab=2"))
	msg := (*sent)[0].msg
	plain := msg[strings.Index(msg, "text/plain"):strings.Index(msg, "text/html")]

	assert.Contains(t, plain, "Stock & supply")
	assert.Contains(t, plain, `Ward "A" isn't ready`)
	assert.Contains(t, plain, "Open: https://hospilog.test/orders?id=1&tab=2")
	assert.NotContains(t, plain, "&amp;")
	assert.NotContains(t, plain, "&#")
}

func TestMailDeliveryErrorPropagates(t *testing.T) {
	svc, _ := newCapturingMail(errors.New("535 auth failed"))
	assert.Error(t, svc.SendMailToNotifyUser("a@b.com", "hi", "body", "", ""))
}

func TestUpdateSettings(t *testing.T) {
	svc, sent := newCapturingMail(nil)

	assert.Error(t, svc.UpdateSettings(SMTPConfig{Host: "", Port: 25, From: "x@y.z"}))

	require.NoError(t, svc.UpdateSettings(SMTPConfig{
		Host: "relay.hospital.test", Port: 465, Username: "relay", From: "ops@hospital.test", UseSSL: true,
	}))
	cfg := svc.Settings()
	assert.Equal(t, "relay.hospital.test", cfg.Host)
	assert.Equal(t, "app-password", cfg.Password, "blank password keeps the stored one")
	assert.Equal(t, "HospiLog", cfg.AppName)

	require.NoError(t, svc.SendMailToNotifyUser("a@b.com", "Verified", "ok", "", ""))
	assert.Equal(t, "relay.hospital.test", (*sent)[0].cfg.Host)
	assert.True(t, strings.HasPrefix((*sent)[0].msg, "From: ops@hospital.test"))
}
