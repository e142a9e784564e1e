package mail

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// log is the structured logger of the mail client.
var log = logrus.New()

// sender is the part of gomail.Dialer used by the client. Tests substitute a
// fake implementation.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends registration confirmation emails through an SMTP account.
type Client struct {
	dialer sender
	from   string
}

// NewClient builds a mail client for the specified SMTP host and account.
// The account address is also used as the sender address.
func NewClient(host string, port int, user string, password string) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
	}
}

// SendRegistrationEmail delivers the fixed welcome email to a freshly
// registered patient. Exactly one delivery attempt is made. Every failure is
// logged and reported as false; the caller treats the outcome as advisory and
// never fails the registration over it.
func (c *Client) SendRegistrationEmail(to string, name string) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Hospital Registration Successful")
	m.SetBody("text/html", registrationBody(name))
	if err := c.dialer.DialAndSend(m); err != nil {
		log.Error("email error: ", err)
		return false
	}
	return true
}

// registrationBody renders the welcome email for the given patient name.
func registrationBody(name string) string {
	return fmt.Sprintf(`
		<h2>Welcome to MediCare Hospital!</h2>
		<p>Dear %s,</p>
		<p>Your registration has been completed successfully.</p>
		<p>Thank you for choosing our hospital.</p>
		<br>
		<p>Best regards,<br>MediCare Hospital Team</p>
	`, name)
}
