package mail

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
)

// Mailer dispatches emails from a preset sender address. Dispatch is
// fire-and-forget; callers own any compensating action on failure.
type Mailer interface {
	// IsEnabled returns whether the mail transport is configured.
	IsEnabled() bool

	// Send delivers an HTML email to a single recipient.
	Send(to, subject, body string) error
}

// client provides an SMTP mailer backed by goemail.
type client struct {
	smtp        *goemail.SMTP // SMTP server
	mailName    string        // From name
	mailAddress string        // From email address
	disabled    bool          // Has email been disabled
}

// New returns a Mailer. Mail is considered disabled, and every Send becomes
// a no-op, if any of the required SMTP credentials are missing.
func New(host, user, password, emailAddress string, skipVerify bool) (Mailer, error) {
	if host == "" || user == "" || password == "" {
		log.Println("mail: disabled")
		return &client{disabled: true}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", user, password, host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	a, err := mail.ParseAddress(emailAddress)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: skipVerify,
	}

	smtp, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, err
	}

	return &client{
		smtp:        smtp,
		mailName:    a.Name,
		mailAddress: a.Address,
	}, nil
}

// IsEnabled returns whether the mail transport is configured.
func (c *client) IsEnabled() bool {
	return !c.disabled
}

// Send delivers an HTML email to a single recipient.
func (c *client) Send(to, subject, body string) error {
	if c.disabled {
		return nil
	}

	msg := goemail.NewHTMLMessage(c.mailAddress, subject, body)
	msg.SetName(c.mailName)
	msg.AddTo(to)

	return c.smtp.Send(msg)
}
