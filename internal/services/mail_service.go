package services

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type IMailService interface {
	SendPasswordResetOtp(to, otp string) error
	SendFeedbackNotification(to, invoiceNumber string, overallRating int) error
}

// SMTPConfig holds SMTP transport plus the branding used in mail bodies.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseSSL   bool // SMTPS 465; otherwise STARTTLS on 587

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("mailHTML").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("mailText").Parse(mailTextTemplate)),
	}, nil
}

func (s *smtpMailService) SendPasswordResetOtp(to, otp string) error {
	subject := "Your password reset code"
	html, text, err := s.renderEmail(emailData{
		Title:   subject,
		Intro:   "Use the code below to reset your password. The code expires in 15 minutes. If you did not request a reset, you can safely ignore this email.",
		Code:    otp,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendFeedbackNotification(to, invoiceNumber string, overallRating int) error {
	subject := fmt.Sprintf("New feedback on invoice %s", invoiceNumber)
	html, text, err := s.renderEmail(emailData{
		Title:     subject,
		Intro:     fmt.Sprintf("A customer just rated invoice %s %d/5 overall. Open your dashboard to read the full response.", invoiceNumber, overallRating),
		ButtonURL: strings.TrimRight(s.cfg.AppBaseURL, "/") + "/dashboard",
		ButtonTxt: "View Dashboard",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

type emailData struct {
	Title     string
	Intro     string
	Code      string
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
    body { margin: 0; padding: 0; background: #0f172a; color: #e2e8f0; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrap { max-width: 560px; margin: 0 auto; padding: 32px 20px; }
    .card { background: #1e293b; border-radius: 12px; padding: 32px; }
    h1 { font-size: 20px; margin: 0 0 16px; color: #ffffff; }
    p { font-size: 15px; line-height: 1.6; margin: 0 0 16px; }
    .code { font-size: 28px; letter-spacing: 6px; font-weight: 700; text-align: center; padding: 16px; background: #0f172a; border-radius: 8px; color: #38bdf8; }
    .btn { display: inline-block; padding: 12px 24px; background: #0ea5e9; color: #ffffff; border-radius: 8px; text-decoration: none; font-weight: 600; }
    .footer { text-align: center; font-size: 12px; color: #64748b; padding-top: 24px; }
  </style>
</head>
<body>
  <div class="wrap">
    <div class="card">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Code}}<div class="code">{{.Code}}</div>{{end}}
      {{if .ButtonURL}}<p style="text-align:center"><a href="{{.ButtonURL}}" class="btn">{{.ButtonTxt}}</a></p>{{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}. All rights reserved.</div>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}

{{if .Code}}Code: {{.Code}}
{{end}}{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}
— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data emailData) (html string, text string, err error) {
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
	fromHeader := s.formatFromHeader()
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()
		return s.submit(c, auth, to, msg.Bytes())
	}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}
	return s.submit(c, auth, to, msg.Bytes())
}

func (s *smtpMailService) submit(c *smtp.Client, auth smtp.Auth, to string, msg []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mimeQuote(name), s.cfg.From)
}

// RFC 2047 encoded word for non-ASCII display names.
func mimeQuote(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return fmt.Sprintf("=?UTF-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(s)))
		}
	}
	return s
}
