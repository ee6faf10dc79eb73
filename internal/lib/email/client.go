// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the provider and renders HTML bodies
// from templates embedded in the binary, with the sprig function set
// available inside every template.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"github.com/deppfellow/rpos-gateway/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names an embedded template, templates/<name>.html.
type Template string

const (
	TemplateApprovalRequest Template = "approval_request"
)

// sender is the part of the Resend API the client needs.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	sender sender
	from   string
	logger *zerolog.Logger

	once      sync.Once
	templates *template.Template
	parseErr  error
}

// NewClient creates an email Client. Without a Resend API key the client
// renders and logs messages but never sends them.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{logger: logger, from: "RPOS Gateway <onboarding@resend.dev>"}
	if cfg.Notification != nil && cfg.Notification.FromAddress != "" {
		c.from = cfg.Notification.FromAddress
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.sender = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	}
	return c
}

func (c *Client) parse() (*template.Template, error) {
	c.once.Do(func() {
		c.templates, c.parseErr = template.New("emails").
			Funcs(sprig.HtmlFuncMap()).
			ParseFS(templateFS, "templates/*.html")
	})
	return c.templates, c.parseErr
}

// Render executes the named template with data.
func (c *Client) Render(name Template, data any) (string, error) {
	tmpl, err := c.parse()
	if err != nil {
		return "", errors.Wrap(err, "failed to parse email templates")
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName and delivers it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	if c.sender == nil {
		c.logger.Warn().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("resend api key not configured, email not sent")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.sender.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
