package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"

	"tripmaker/internal/models/request_models"
	"tripmaker/pkg/utils"
)

type IMailService interface {
	SendQuoteRequest(ctx context.Context, req request_models.QuoteRequest) error
	SendMailToResetPassword(ctx context.Context, email, token string) error
}

// SMTPConfig holds SMTP credentials and branding.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string // app password when 2FA is enabled
	From       string
	FromName   string
	UseSSL     bool // true for SMTPS 465
	RequireTLS bool // fail if STARTTLS is not offered

	QuoteRecipient string // every quote request lands here
	AppName        string
	AppBaseURL     string
}

// mailSender delivers a fully rendered RFC 5322 message.
type mailSender func(ctx context.Context, to string, msg []byte) error

type smtpMailService struct {
	cfg       SMTPConfig
	quoteHTML *template.Template
	quoteText *texttemplate.Template
	resetHTML *template.Template
	resetText *texttemplate.Template
	send      mailSender
	log       *zap.Logger
}

func NewSMTPMailService(cfg SMTPConfig, log *zap.Logger) (IMailService, error) {
	if cfg.QuoteRecipient == "" {
		cfg.QuoteRecipient = cfg.From
	}
	s := &smtpMailService{
		cfg:       cfg,
		quoteHTML: template.Must(template.New("quoteHTML").Parse(quoteHTMLTemplate)),
		quoteText: texttemplate.Must(texttemplate.New("quoteText").Parse(quoteTextTemplate)),
		resetHTML: template.Must(template.New("resetHTML").Parse(resetHTMLTemplate)),
		resetText: texttemplate.Must(texttemplate.New("resetText").Parse(resetTextTemplate)),
		log:       log.Named("mail"),
	}
	s.send = s.sendSMTP
	return s, nil
}

// ------------------- Public API -------------------

type quoteEmailData struct {
	Destination string
	Period      string
	People      int
	Budget      string
	Contact     string
	Plan        string
	AppName     string
	Year        int
}

func QuoteSubject(req request_models.QuoteRequest) string {
	return fmt.Sprintf("[견적요청] %s 여행 (%d명)", req.Destination, req.People)
}

func (s *smtpMailService) SendQuoteRequest(ctx context.Context, req request_models.QuoteRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if s.cfg.QuoteRecipient == "" {
		return fmt.Errorf("%w: no quote recipient configured", utils.ErrMailDeliveryFailed)
	}

	contact := strings.TrimSpace(req.Contact)
	if contact == "" {
		contact = "미입력"
	}
	data := quoteEmailData{
		Destination: req.Destination,
		Period:      req.Period,
		People:      req.People,
		Budget:      req.Budget.Value,
		Contact:     contact,
		Plan:        req.Plan,
		AppName:     s.cfg.AppName,
		Year:        time.Now().Year(),
	}

	var hb, tb bytes.Buffer
	if err := s.quoteHTML.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.quoteText.Execute(&tb, data); err != nil {
		return err
	}

	msg := s.buildMessage(s.cfg.QuoteRecipient, QuoteSubject(req), hb.String(), tb.String())
	if err := s.send(ctx, s.cfg.QuoteRecipient, msg); err != nil {
		return fmt.Errorf("%w: %w", utils.ErrMailDeliveryFailed, err)
	}

	s.log.Info("quote request sent", zap.String("destination", req.Destination), zap.Int("people", req.People))
	return nil
}

type resetEmailData struct {
	Link    string
	AppName string
	Year    int
}

func (s *smtpMailService) SendMailToResetPassword(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	data := resetEmailData{Link: link, AppName: s.cfg.AppName, Year: time.Now().Year()}

	var hb, tb bytes.Buffer
	if err := s.resetHTML.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.resetText.Execute(&tb, data); err != nil {
		return err
	}

	msg := s.buildMessage(to, "Reset your password", hb.String(), tb.String())
	if err := s.send(ctx, to, msg); err != nil {
		return fmt.Errorf("%w: %w", utils.ErrMailDeliveryFailed, err)
	}
	return nil
}

// ------------------- Rendering -------------------

const quoteHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Destination}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f1f5f9; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, "Apple SD Gothic Neo", sans-serif; }
    .container { max-width: 640px; margin: 32px auto; background: #ffffff; border-radius: 16px; padding: 32px; }
    h2 { margin: 0 0 24px; font-size: 22px; }
    p { margin: 0 0 12px; line-height: 1.6; }
    pre { white-space: pre-wrap; font-family: inherit; background: #f4f4f4; padding: 20px; border-radius: 10px; }
    .muted { color: #64748b; font-size: 12px; margin-top: 24px; }
  </style>
</head>
<body>
  <div class="container">
    <h2>새로운 여행 견적 요청이 도착했습니다</h2>
    <p><strong>여행지:</strong> {{.Destination}}</p>
    <p><strong>일정:</strong> {{.Period}}</p>
    <p><strong>인원:</strong> {{.People}}명</p>
    <p><strong>예산:</strong> {{.Budget}}만원</p>
    <p><strong>고객 연락처:</strong> {{.Contact}}</p>
    <hr />
    <h3>AI 제안 일정</h3>
    <pre>{{.Plan}}</pre>
    <p class="muted">{{.AppName}} (c) {{.Year}}</p>
  </div>
</body>
</html>`

const quoteTextTemplate = `새로운 여행 견적 요청
여행지: {{.Destination}}
일정: {{.Period}}
인원: {{.People}}명
예산: {{.Budget}}만원
고객 연락처: {{.Contact}}

AI 제안 일정
{{.Plan}}
`

const resetHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>Reset your password</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background: #f1f5f9;">
  <div style="max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 16px; padding: 32px;">
    <h1 style="font-size: 24px;">Reset your password</h1>
    <p>We received a request to reset your password. If you did not request this, you can ignore this email.</p>
    <p><a href="{{.Link}}" style="display: inline-block; padding: 14px 28px; background: #2563eb; color: #ffffff; border-radius: 12px; text-decoration: none;">Reset Password</a></p>
    <p style="color: #64748b; font-size: 12px;">{{.AppName}} (c) {{.Year}}</p>
  </div>
</body>
</html>`

const resetTextTemplate = `Reset your password

Open this link to continue:
{{.Link}}

{{.AppName}} (c) {{.Year}}
`

// ------------------- SMTP Send -------------------

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: base64\r\n\r\n")
	write("%s\r\n", wrapBase64(textBody))

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: base64\r\n\r\n")
	write("%s\r\n", wrapBase64(htmlBody))

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func wrapBase64(body string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(body))
	var sb strings.Builder
	for len(enc) > 76 {
		sb.WriteString(enc[:76])
		sb.WriteString("\r\n")
		enc = enc[76:]
	}
	sb.WriteString(enc)
	return sb.String()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

func (s *smtpMailService) sendSMTP(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

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
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
