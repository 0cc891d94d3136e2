package service

import (
	"fmt"
	"html"

	"fincontrol/config"
	"fincontrol/models"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled e-mail desligado na configuração
var ErrEmailDisabled = fmt.Errorf("serviço de e-mail desativado, configure email.enabled=true")

// EmailService envio de e-mails via SMTP
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService cria o serviço de e-mail
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled indica se o envio está ligado
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// NotifyDecision avisa o autor da transação sobre a aprovação ou rejeição
func (s *EmailService) NotifyDecision(to *models.User, tx *models.Transaction) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	return s.sendEmail(to.Email, decisionSubject(tx.Status), s.generateDecisionEmailBody(to.Name, tx))
}

// SendWelcomeEmail avisa o novo usuário criado por um administrador
func (s *EmailService) SendWelcomeEmail(to *models.User, loginURL string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	return s.sendEmail(to.Email, "[FinControl] Sua conta foi criada", s.generateWelcomeEmailBody(to.Name, to.Email, loginURL))
}

// SendTestEmail envia um e-mail de teste da configuração SMTP
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ E-mail configurado</h2>
    <p>Se você recebeu esta mensagem, o envio de e-mails está funcionando.</p>
    <p style="color: #666;">FinControl</p>
</body>
</html>
`
	return s.sendEmail(toEmail, "[FinControl] Teste de configuração de e-mail", body)
}

func decisionSubject(status string) string {
	if status == models.StatusApproved {
		return "[FinControl] Transação aprovada"
	}
	return "[FinControl] Transação rejeitada"
}

func typeLabel(t string) string {
	if t == models.TransactionExpense {
		return "Saída"
	}
	return "Entrada"
}

// generateDecisionEmailBody corpo do aviso de decisão
func (s *EmailService) generateDecisionEmailBody(name string, tx *models.Transaction) string {
	verdict, color := "aprovada", "#16a34a"
	if tx.Status == models.StatusRejected {
		verdict, color = "rejeitada", "#dc2626"
	}
	description := tx.Description
	if description == "" {
		description = "(sem descrição)"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: %s; color: white; padding: 24px; text-align: center; }
        .content { padding: 32px 28px; color: #333; line-height: 1.7; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 8px 0; border-bottom: 1px solid #eee; }
        .footer { background: #f8f9fa; padding: 16px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Transação %s</h1></div>
        <div class="content">
            <p>Olá, <strong>%s</strong>!</p>
            <p>A transação #%d que você lançou foi <strong>%s</strong> por um administrador.</p>
            <table>
                <tr><td>Tipo</td><td>%s</td></tr>
                <tr><td>Valor</td><td>R$ %s</td></tr>
                <tr><td>Descrição</td><td>%s</td></tr>
            </table>
        </div>
        <div class="footer"><p>Mensagem automática, não responda.</p></div>
    </div>
</body>
</html>
`, color, verdict, html.EscapeString(name), tx.ID, verdict, typeLabel(tx.Type), FormatBRL(tx.Amount), html.EscapeString(description))
}

// generateWelcomeEmailBody corpo do e-mail de boas-vindas
func (s *EmailService) generateWelcomeEmailBody(name, email, loginURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Bem-vindo(a), %s!</h2>
    <p>Um administrador criou sua conta no FinControl com o e-mail <strong>%s</strong>.</p>
    <p>Acesse: <a href="%s">%s</a></p>
    <p style="color: #666;">Peça a senha inicial ao administrador e altere-a no seu perfil.</p>
</body>
</html>
`, html.EscapeString(name), html.EscapeString(email), loginURL, loginURL)
}

// sendEmail envia a mensagem pelo SMTP configurado
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, "FinControl"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %w", err)
	}

	return nil
}
