package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendBusinessApprovedEmail notifies an owner that their registration was approved
func (s *EmailService) SendBusinessApprovedEmail(toEmail, ownerName, businessName string) error {
	htmlContent, err := renderTemplate(businessApprovedTemplate, map[string]string{
		"OwnerName":    ownerName,
		"BusinessName": businessName,
		"LoginURL":     s.config.FrontendURL + "/login",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("%s is approved - SmartBiz", businessName)
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// SendBusinessRejectedEmail notifies an owner that their registration was rejected
func (s *EmailService) SendBusinessRejectedEmail(toEmail, ownerName, businessName, reason string) error {
	htmlContent, err := renderTemplate(businessRejectedTemplate, map[string]string{
		"OwnerName":    ownerName,
		"BusinessName": businessName,
		"Reason":       reason,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Registration update for %s - SmartBiz", businessName)
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// LowStockItem is one product line in a low-stock alert
type LowStockItem struct {
	Name      string
	Remaining string
	Threshold string
}

// SendLowStockAlert emails the owner a list of products at or below threshold
func (s *EmailService) SendLowStockAlert(toEmail, businessName string, items []LowStockItem) error {
	if len(items) == 0 {
		return nil
	}

	htmlContent, err := renderTemplate(lowStockTemplate, struct {
		BusinessName string
		Items        []LowStockItem
	}{BusinessName: businessName, Items: items})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Low stock alert (%d products) - SmartBiz", len(items))
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func renderTemplate(text string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const businessApprovedTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Business Approved</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 28px;">SmartBiz</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 40px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0;">You're in</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Hello {{.OwnerName}},
                </p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Your registration for <strong>{{.BusinessName}}</strong> has been approved.
                    You can now sign in and start managing your inventory, purchases and invoices.
                </p>
                <table role="presentation" style="margin: 30px auto;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 8px;">
                            <a href="{{.LoginURL}}" style="display: inline-block; padding: 16px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">
                                Sign In
                            </a>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

const businessRejectedTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Registration Update</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 28px;">SmartBiz</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 40px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0;">Registration update</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Hello {{.OwnerName}},
                </p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    We could not approve the registration for <strong>{{.BusinessName}}</strong> at this time.
                </p>
                {{if .Reason}}
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Reason: {{.Reason}}
                </p>
                {{end}}
            </td>
        </tr>
    </table>
</body>
</html>
`

const lowStockTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Low Stock Alert</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 28px;">SmartBiz</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 40px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0;">Low stock at {{.BusinessName}}</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    The following products are at or below their low-stock threshold:
                </p>
                <table style="width: 100%; border-collapse: collapse; margin-top: 20px;">
                    <tr>
                        <th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e;">Product</th>
                        <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e;">Remaining</th>
                        <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #1a1a2e;">Threshold</th>
                    </tr>
                    {{range .Items}}
                    <tr>
                        <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568;">{{.Name}}</td>
                        <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; text-align: right;">{{.Remaining}}</td>
                        <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #4a5568; text-align: right;">{{.Threshold}}</td>
                    </tr>
                    {{end}}
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
