package infra

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"github.com/lyb5737-lyb77/inventory-management/internal/config"
	"github.com/lyb5737-lyb77/inventory-management/internal/dto"

	"github.com/jordan-wright/email"
)

// ErrMailNotConfigured is returned when no SMTP host is set.
var ErrMailNotConfigured = errors.New("mailer: SMTP host not configured")

var outboundBody = template.Must(template.New("outbound").Parse(
	`{{.WarehouseName}} 담당자님,

아래와 같이 출고를 요청드립니다.

요청일: {{.RequestedOn}}
요청자: {{.RequesterName}}
품목: {{.ItemList}}

고객사: {{.CustomerName}}
주소: {{.CustomerAddress}}
연락처: {{.CustomerContact}}

비고: {{.Remarks}}

출고 요청서를 첨부합니다.
`))

// Mailer sends outbound notifications through SMTP. Every send goes through a
// circuit breaker.
type Mailer struct {
	host        string
	user        string
	password    string
	from        string
	addr        string
	pdfFontPath string
	breaker     *CircuitBreaker
	send        func(e *email.Email) error
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		host:        cfg.SMTPHost,
		user:        cfg.SMTPUser,
		password:    cfg.SMTPPassword,
		from:        cfg.MailFrom,
		addr:        fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		pdfFontPath: cfg.PDFFontPath,
		breaker:     NewCircuitBreaker(DefaultCBConfig()),
	}
	m.send = m.sendSMTP
	return m
}

func (m *Mailer) sendSMTP(e *email.Email) error {
	if m.host == "" {
		return ErrMailNotConfigured
	}
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}

// BreakerState reports the SMTP circuit state for /health.
func (m *Mailer) BreakerState() string {
	return m.breaker.State().String()
}

// ItemList formats lines as "name xN" joined by ", ".
func ItemList(lines []dto.OutboundNoticeLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", l.Name, l.Quantity))
	}
	return strings.Join(parts, ", ")
}

func composeOutbound(n dto.OutboundNotice, from string, slip []byte) (*email.Email, error) {
	var body bytes.Buffer
	data := struct {
		dto.OutboundNotice
		ItemList string
	}{n, ItemList(n.Items)}
	if err := outboundBody.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("mailer: render body: %w", err)
	}

	e := email.NewEmail()
	e.From = from
	e.To = []string{n.ManagerEmail}
	e.Subject = fmt.Sprintf("[출고요청] %s - %s", n.WarehouseName, n.CustomerName)
	e.Text = body.Bytes()

	if len(slip) > 0 {
		name := fmt.Sprintf("출고요청서_%s.pdf", strings.ReplaceAll(n.RequestedOn, "-", ""))
		if _, err := e.Attach(bytes.NewReader(slip), name, "application/pdf"); err != nil {
			return nil, fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}
	return e, nil
}

// SendOutbound mails the outbound request, with its PDF slip, to the warehouse
// manager.
func (m *Mailer) SendOutbound(ctx context.Context, n dto.OutboundNotice) error {
	slip, err := RenderOutboundSlip(n, m.pdfFontPath)
	if err != nil {
		return err
	}
	e, err := composeOutbound(n, m.from, slip)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.breaker.Execute(func() error { return m.send(e) })
}
