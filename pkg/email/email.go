// Package email, uygulama genelinde email gönderimi için soyutlama katmanı.
//
// EmailSender interface'i ile gönderim detayları soyutlanır — service
// katmanı Resend'e değil interface'e bağımlıdır. Farklı bir sağlayıcıya
// geçmek için yeni bir implementasyon yazıp main.go'daki wire-up'ı
// değiştirmek yeterli.
package email

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendContactNotification, iletişim formundan yeni mesaj geldiğinde
	// admin'e bildirim emaili gönderir.
	SendContactNotification(ctx context.Context, name, fromEmail, subject, body string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client     *resend.Client
	fromEmail  string // Gönderici adres — Resend'de doğrulanmış domain altında olmalı
	adminEmail string // Bildirimlerin gideceği adres
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
// apiKey: Resend dashboard'dan alınan key (re_xxxxxxxx formatında).
func NewResendSender(apiKey, fromEmail, adminEmail string) EmailSender {
	return &resendSender{
		client:     resend.NewClient(apiKey),
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
	}
}

// SendContactNotification, contact form bildirimi gönderir.
//
// Kullanıcı girdisi HTML'e gömülmeden önce escape edilir — form alanları
// üzerinden HTML injection yapılamaz.
func (s *resendSender) SendContactNotification(ctx context.Context, name, fromEmail, subject, body string) error {
	if subject == "" {
		subject = "(no subject)"
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:24px;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
  <table width="560" cellpadding="0" cellspacing="0" style="margin:0 auto;background-color:#ffffff;border-radius:8px;padding:32px;">
    <tr><td>
      <h1 style="color:#18181b;font-size:20px;margin:0 0 16px 0;">New contact message</h1>
      <p style="color:#3f3f46;font-size:14px;margin:0 0 8px 0;"><strong>From:</strong> %s &lt;%s&gt;</p>
      <p style="color:#3f3f46;font-size:14px;margin:0 0 16px 0;"><strong>Subject:</strong> %s</p>
      <p style="color:#3f3f46;font-size:14px;line-height:1.6;margin:0;white-space:pre-wrap;">%s</p>
    </td></tr>
  </table>
</body>
</html>`,
		html.EscapeString(name),
		html.EscapeString(fromEmail),
		html.EscapeString(subject),
		html.EscapeString(body),
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("prodstore <%s>", s.fromEmail),
		To:      []string{s.adminEmail},
		ReplyTo: fromEmail,
		Subject: fmt.Sprintf("[contact] %s", subject),
		Html:    htmlBody,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	return nil
}
