package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmail(t *testing.T) {
	svc, err := NewSMTPMailService(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "no-reply@invisifeed.in",
		FromName: "InvisiFeed",
		AppName:  "InvisiFeed",
	})
	require.NoError(t, err)

	s := svc.(*smtpMailService)
	html, text, err := s.renderEmail(emailData{
		Title:   "Your password reset code",
		Intro:   "Use the code below.",
		Code:    "482916",
		AppName: "InvisiFeed",
		Year:    2025,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "482916")
	assert.Contains(t, html, "Your password reset code")
	assert.Contains(t, html, "InvisiFeed")
	assert.Contains(t, text, "Code: 482916")
	assert.NotContains(t, html, "{{")
}

func TestFormatFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		fromName string
		want     string
	}{
		{name: "plain ascii", fromName: "InvisiFeed", want: "InvisiFeed <no-reply@invisifeed.in>"},
		{name: "empty name", fromName: "", want: "no-reply@invisifeed.in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &smtpMailService{cfg: SMTPConfig{From: "no-reply@invisifeed.in", FromName: tt.fromName}}
			assert.Equal(t, tt.want, s.formatFromHeader())
		})
	}
}

func TestMimeQuote_NonASCII(t *testing.T) {
	out := mimeQuote("Invísifeed")
	assert.True(t, strings.HasPrefix(out, "=?UTF-8?B?"))
	assert.True(t, strings.HasSuffix(out, "?="))
}
