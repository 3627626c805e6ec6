package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

type MailService interface {
	SendMailToResetPassword(to, token string) error

	// SendEnrollmentConfirmation is fired by the payment webhook once a
	// founding member flips to paid. Failures must never fail the webhook.
	SendEnrollmentConfirmation(to, fullName string, memberNumber int) error
}

// SMTPConfig holds SMTP + branding config, read from env in the fx module.
type SMTPConfig struct {
	Host       string // e.g. "smtp.resend.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@constellation.app"
	FromName   string // display name
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail when STARTTLS is unavailable

	AppName    string
	AppBaseURL string // e.g. "https://constellation.app"
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (MailService, error) {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("mailHTML").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("mailText").Parse(mailTextTemplate)),
	}, nil
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	subject := "Redefina sua senha"

	html, text, err := s.renderEmail(mailData{
		Title:     subject,
		Intro:     "Recebemos um pedido para redefinir sua senha. Clique no botão abaixo para continuar. Se você não fez esse pedido, ignore este e-mail.",
		ButtonURL: link,
		ButtonTxt: "Redefinir senha",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendEnrollmentConfirmation(to, fullName string, memberNumber int) error {
	subject := "Bem-vindo ao Founding 100"

	html, text, err := s.renderEmail(mailData{
		Title: subject,
		Intro: fmt.Sprintf(
			"%s, seu pagamento foi confirmado. Você é o membro fundador nº %d do programa Founding 100 e sua assinatura TEAM de 24 meses já está ativa.",
			fullName, memberNumber),
		ButtonURL: strings.TrimRight(s.cfg.AppBaseURL, "/") + "/app",
		ButtonTxt: "Acessar o portal",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

type mailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 0;
      background: #0b1026;
      color: #e2e8f0;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    .wrapper { width: 100%; padding: 40px 16px; box-sizing: border-box; }
    .container {
      max-width: 600px;
      margin: 0 auto;
      background: #141a3a;
      border-radius: 14px;
      overflow: hidden;
      box-shadow: 0 16px 48px rgba(0, 0, 0, 0.45);
    }
    .header {
      padding: 28px 32px;
      border-bottom: 1px solid rgba(148, 163, 184, 0.12);
    }
    .brand {
      font-weight: 700;
      letter-spacing: 2px;
      font-size: 20px;
      text-transform: uppercase;
      color: #a5b4fc;
    }
    .hero { padding: 36px 32px; }
    h1 { margin: 0 0 16px; font-size: 26px; color: #f1f5f9; line-height: 1.3; }
    p { margin: 0 0 20px; line-height: 1.7; color: #cbd5e1; font-size: 16px; }
    .btn {
      display: inline-block;
      padding: 14px 30px;
      margin: 24px 0;
      background: #6366f1;
      color: #ffffff !important;
      text-decoration: none;
      border-radius: 10px;
      font-weight: 600;
      font-size: 16px;
    }
    .muted { color: #94a3b8; font-size: 13px; line-height: 1.6; margin: 0; }
    .link-text { color: #a5b4fc; word-break: break-all; font-size: 13px; }
    .footer {
      padding: 22px 32px;
      color: #64748b;
      font-size: 13px;
      text-align: center;
      border-top: 1px solid rgba(148, 163, 184, 0.12);
    }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header">
        <div class="brand">{{.AppName}}</div>
      </div>
      <div class="hero">
        <h1>{{.Title}}</h1>
        <p>{{.Intro}}</p>
        {{if .ButtonURL}}
          <a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a>
          <p class="muted">
            Se o botão não funcionar, copie e cole este link no seu navegador:
          </p>
          <a href="{{.ButtonURL}}" class="link-text">{{.ButtonURL}}</a>
        {{end}}
      </div>
      <div class="footer">
        © {{.Year}} {{.AppName}}. Todos os direitos reservados.
      </div>
    </div>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Abra este link:
{{.ButtonURL}}
{{end}}

— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data mailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	c, err := s.dial()
	if err != nil {
		return err
	}
	defer c.Quit()

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

// dial returns an authenticated-ready SMTP client over either SMTPS
// (implicit TLS, port 465) or plain TCP upgraded with STARTTLS (port 587).
func (s *smtpMailService) dial() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, s.cfg.Host)
	}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(tlsCfg); err != nil {
			c.Close()
			return nil, err
		}
	} else if s.cfg.RequireTLS {
		c.Close()
		return nil, fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}
	return c, nil
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
