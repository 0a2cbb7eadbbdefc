package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"remindmail/internal/config"
	"remindmail/internal/pkg/logger"
)

// Client sends plain-text notification emails over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    logger.Logger
}

// NewClient creates an SMTP mail client from the given configuration.
func NewClient(cfg config.SMTP, log logger.Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

// SendText sends a plain-text email to a single recipient.
func (c *Client) SendText(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	c.log.Debug(fmt.Sprintf("Sent notification email to %s", to))
	return nil
}
