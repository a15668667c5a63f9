package main

import (
	"bytes"
	"encoding/json"
	"html/template"
	"testing"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip 模拟消息经过队列的序列化和反序列化
// Data 在接收端不再是具体类型，而是以 json tag 为键的 map
func roundTrip(t *testing.T, message domain.MailMessage) domain.MailMessage {
	t.Helper()

	body, err := json.Marshal(message)
	require.NoError(t, err)

	received := domain.MailMessage{}
	require.NoError(t, json.Unmarshal(body, &received))
	return received
}

func renderTemplate(t *testing.T, path string, data any) string {
	t.Helper()

	tmpl, err := template.ParseFiles(path)
	require.NoError(t, err)

	buf := bytes.Buffer{}
	require.NoError(t, tmpl.Execute(&buf, data))
	return buf.String()
}

func TestRenderCreateWorkerMail(t *testing.T) {
	message := roundTrip(t, domain.MailMessage{
		Type: "create_worker",
		To:   "zhangwei1@example.com",
		Data: domain.CreateWorkerMailData{Name: "张伟", Username: "zhangwei1"},
	})

	body := renderTemplate(t, "../../templates/new_account_email.html", message.Data)
	assert.Contains(t, body, "张伟")
	assert.Contains(t, body, "zhangwei1")
}

func TestRenderResetPasswordMail(t *testing.T) {
	message := roundTrip(t, domain.MailMessage{
		Type: "reset_password",
		To:   "zhangwei1@example.com",
		Data: domain.ResetPasswordMailData{Name: "张伟", OTP: "954217", Expiration: 15},
	})

	body := renderTemplate(t, "../../templates/reset_password_otp_email.html", message.Data)
	assert.Contains(t, body, "张伟")
	assert.Contains(t, body, "954217")
	assert.Contains(t, body, "15 分钟")
}
