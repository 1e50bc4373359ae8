package service

import (
	"bytes"
	"errors"
	"testing"

	"expensetracker/config"
	"expensetracker/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func juneSummary(remaining string) *ledger.MonthlySummary {
	return &ledger.MonthlySummary{
		Period:      "2025-06",
		Income:      decimal.RequireFromString("1000"),
		Expenses:    decimal.RequireFromString("250.5"),
		Budgets:     decimal.RequireFromString("600"),
		Remaining:   decimal.RequireFromString(remaining),
		Unallocated: decimal.RequireFromString("400"),
	}
}

func TestGenerateMonthlyReportBody(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{})

	body := s.generateMonthlyReportBody("<张三>", juneSummary("749.5"))
	assert.Contains(t, body, "2025-06 月度报告")
	assert.Contains(t, body, "&lt;张三&gt;")
	assert.Contains(t, body, "1000.00")
	assert.Contains(t, body, "250.50")
	assert.Contains(t, body, "749.50")
	assert.Contains(t, body, "#10b981")

	body = s.generateMonthlyReportBody("李四", juneSummary("-10"))
	assert.Contains(t, body, "#ef4444")
}

func TestSendMonthlyReport(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	assert.ErrorIs(t, disabled.SendMonthlyReport("a@example.com", "a", juneSummary("0")), ErrEmailDisabled)
	assert.False(t, disabled.Enabled())

	s := NewEmailService(&config.EmailConfig{Enabled: true, Username: "noreply@example.com", From: "记账系统"})
	var sent *gomail.Message
	s.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	require.NoError(t, s.SendMonthlyReport("a@example.com", "a", juneSummary("749.5")))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"a@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"【记账系统】2025-06 月度收支报告"}, sent.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "noreply@example.com")

	s.send = func(*gomail.Message) error { return errors.New("dial tcp: refused") }
	err = s.SendMonthlyReport("a@example.com", "a", juneSummary("0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "发送邮件失败")
}

func TestSendTestEmail(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	assert.ErrorIs(t, disabled.SendTestEmail("a@example.com"), ErrEmailDisabled)

	s := NewEmailService(&config.EmailConfig{Enabled: true, Username: "noreply@example.com", From: "记账系统"})
	var sent *gomail.Message
	s.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}
	require.NoError(t, s.SendTestEmail("admin@example.com"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"admin@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"【记账系统】邮件配置测试"}, sent.GetHeader("Subject"))
}
