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
	"sync"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"
)

type IMailService interface {
	SendOtpCode(to, code string, ttl time.Duration) error
	SendMailToResetPassword(to, token string) error
	SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error
	Settings() SMTPConfig
	UpdateSettings(cfg SMTPConfig) error
}

// SMTPConfig holds the SMTP account and branding used in the footer.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string // envelope from
	FromName   string
	UseSSL     bool // SMTPS on 465; otherwise STARTTLS
	RequireTLS bool

	AppName    string
	AppBaseURL string
}

func (c SMTPConfig) validate() error {
	if c.Host == "" || c.Port <= 0 || c.From == "" {
		return fmt.Errorf("smtp: host, port and from are required")
	}
	return nil
}

type deliverFunc func(cfg SMTPConfig, to string, msg []byte) error

type smtpMailService struct {
	mu      sync.RWMutex
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *texttemplate.Template
	deliver deliverFunc
	logger  *zap.Logger
}

func NewSMTPMailService(cfg SMTPConfig, logger *zap.Logger) (IMailService, error) {
	return newSMTPMailService(cfg, logger, deliverSMTP), nil
}

func newSMTPMailService(cfg SMTPConfig, logger *zap.Logger, deliver deliverFunc) *smtpMailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
		deliver: deliver,
		logger:  logger.Named("mail"),
	}
}

// ------------------- Public API -------------------

func (s *smtpMailService) Settings() SMTPConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// UpdateSettings swaps the SMTP account at runtime. Branding is kept.
func (s *smtpMailService) UpdateSettings(cfg SMTPConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.AppName = s.cfg.AppName
	cfg.AppBaseURL = s.cfg.AppBaseURL
	if cfg.Password == "" {
		cfg.Password = s.cfg.Password
	}
	s.cfg = cfg
	s.logger.Info("smtp settings updated", zap.String("host", cfg.Host), zap.Int("port", cfg.Port))
	return nil
}

func (s *smtpMailService) SendOtpCode(to, code string, ttl time.Duration) error {
	subject := "Your verification code"
	return s.compose(to, subject, EmailData{
		Title: subject,
		Intro: fmt.Sprintf("Use the code below to finish signing in. It expires in %d minutes.", int(ttl.Minutes())),
		Code:  code,
		Note:  "If you did not try to sign in, change your password.",
	})
}

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	return s.compose(to, subject, EmailData{
		Title:     subject,
		Intro:     body,
		ButtonURL: ctaURL,
		ButtonTxt: ctaText,
	})
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	cfg := s.Settings()
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(cfg.AppBaseURL, "/"), url.QueryEscape(token))
	subject := "Reset your password"

	return s.compose(to, subject, EmailData{
		Title:     subject,
		Intro:     "We received a request to reset your password. The link below is valid for a few minutes.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
		Note:      "If you did not request this, you can ignore this email.",
	})
}

// ------------------- Rendering -------------------

type EmailData struct {
	Title     string
	Intro     string
	Code      string
	ButtonURL string
	ButtonTxt string
	Note      string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f1f5f9; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .wrapper { padding: 32px 16px; }
    .container { max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 12px; border: 1px solid #e2e8f0; }
    .header { padding: 20px 28px; border-bottom: 3px solid #0d9488; font-weight: 700; color: #0d9488; letter-spacing: 0.5px; }
    .body { padding: 28px; }
    h1 { margin: 0 0 12px; font-size: 22px; }
    p { margin: 0 0 16px; line-height: 1.6; color: #334155; }
    .code { font-family: "SFMono-Regular", Menlo, monospace; font-size: 30px; letter-spacing: 8px; padding: 14px 0; text-align: center; background: #f0fdfa; border-radius: 8px; color: #115e59; }
    .btn { display: inline-block; padding: 12px 24px; background: #0d9488; color: #ffffff !important; text-decoration: none; border-radius: 8px; font-weight: 600; }
    .muted { color: #64748b; font-size: 13px; word-break: break-all; }
    .footer { padding: 16px 28px; color: #94a3b8; font-size: 12px; text-align: center; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header">{{.AppName}}</div>
      <div class="body">
        <h1>{{.Title}}</h1>
        <p>{{.Intro}}</p>
        {{if .Code}}<p class="code">{{.Code}}</p>{{end}}
        {{if .ButtonURL}}
          <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
          <p class="muted">{{.ButtonURL}}</p>
        {{end}}
        {{if .Note}}<p class="muted">{{.Note}}</p>{{end}}
      </div>
      <div class="footer">&copy; {{.Year}} {{.AppName}}</div>
    </div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Code}}
    {{.Code}}
{{end}}{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}{{if .Note}}
{{.Note}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) compose(to, subject string, data EmailData) error {
	cfg := s.Settings()
	data.AppName = cfg.AppName
	data.Year = time.Now().Year()

	html, text, err := s.renderEmail(data)
	if err != nil {
		return err
	}

	msg := buildMessage(cfg, to, subject, html, text)
	if err := s.deliver(cfg, to, msg); err != nil {
		s.logger.Warn("mail delivery failed", zap.String("subject", subject), zap.Error(err))
		return err
	}
	s.logger.Debug("mail sent", zap.String("subject", subject))
	return nil
}

// ------------------- SMTP Send -------------------

func buildMessage(cfg SMTPConfig, to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", formatFromHeader(cfg))
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
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
	return msg.Bytes()
}

func formatFromHeader(cfg SMTPConfig) string {
	name := strings.TrimSpace(cfg.FromName)
	if name == "" {
		return cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("UTF-8", name), cfg.From)
}

func deliverSMTP(cfg SMTPConfig, to string, msg []byte) error {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
	tlsCfg := &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if cfg.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
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
