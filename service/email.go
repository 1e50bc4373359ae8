package service

import (
	"errors"
	"fmt"
	"html"

	"expensetracker/config"
	"expensetracker/ledger"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用
var ErrEmailDisabled = errors.New("邮件服务未启用，请配置 EXPENSE_EMAIL_ENABLED=true")

// EmailService 邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send func(m *gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// Enabled 是否已启用
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled
}

// SendMonthlyReport 发送月度收支报告
func (s *EmailService) SendMonthlyReport(toEmail, username string, summary *ledger.MonthlySummary) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	subject := fmt.Sprintf("【记账系统】%s 月度收支报告", summary.Period)
	return s.sendEmail(toEmail, subject, s.generateMonthlyReportBody(username, summary))
}

// generateMonthlyReportBody 月度报告内容，结余为负时标红
func (s *EmailService) generateMonthlyReportBody(username string, summary *ledger.MonthlySummary) string {
	remainingColor := "#10b981"
	if summary.Remaining.IsNegative() {
		remainingColor = "#ef4444"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 12px 8px; border-bottom: 1px solid #eee; color: #333; }
        td.amount { text-align: right; font-weight: 600; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 %s 月度报告</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！以下是您本月的收支情况：</p>
            <table>
                <tr><td>总收入</td><td class="amount">%s</td></tr>
                <tr><td>总支出</td><td class="amount">%s</td></tr>
                <tr><td>预算合计</td><td class="amount">%s</td></tr>
                <tr><td>结余</td><td class="amount" style="color: %s;">%s</td></tr>
                <tr><td>未分配预算</td><td class="amount">%s</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 记账系统 - 您的个人财务管理助手</p>
        </div>
    </div>
</body>
</html>
`, summary.Period, html.EscapeString(username),
		summary.Income.StringFixed(2),
		summary.Expenses.StringFixed(2),
		summary.Budgets.StringFixed(2),
		remainingColor, summary.Remaining.StringFixed(2),
		summary.Unallocated.StringFixed(2))
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
</body>
</html>
`
	return s.sendEmail(toEmail, "【记账系统】邮件配置测试", body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
