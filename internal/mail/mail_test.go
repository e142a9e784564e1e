package mail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"
)

// fakeSender records the sent messages and fails on demand.
type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

// TestSendRegistrationEmail expects that a successful delivery reports true
// and that the message is addressed and composed correctly.
func TestSendRegistrationEmail(t *testing.T) {
	fake := &fakeSender{}
	client := &Client{dialer: fake, from: "frontdesk@medicare.example"}

	sent := client.SendRegistrationEmail("jane@example.com", "Jane Doe")

	assert.True(t, sent)
	assert.Equal(t, 1, len(fake.sent))
	message := fake.sent[0]
	assert.Equal(t, []string{"frontdesk@medicare.example"}, message.GetHeader("From"))
	assert.Equal(t, []string{"jane@example.com"}, message.GetHeader("To"))
	assert.Equal(t, []string{"Hospital Registration Successful"}, message.GetHeader("Subject"))
}

// TestSendRegistrationEmailFailure expects that a failed delivery is absorbed
// into a false return instead of an error.
func TestSendRegistrationEmailFailure(t *testing.T) {
	fake := &fakeSender{err: errors.New("535 authentication failed")}
	client := &Client{dialer: fake, from: "frontdesk@medicare.example"}

	assert.False(t, client.SendRegistrationEmail("jane@example.com", "Jane Doe"))
	assert.Empty(t, fake.sent)
}

// TestRegistrationBody expects that the template greets the patient by name.
func TestRegistrationBody(t *testing.T) {
	body := registrationBody("Jane Doe")
	assert.Contains(t, body, "Welcome to MediCare Hospital!")
	assert.Contains(t, body, "Dear Jane Doe,")
	assert.Contains(t, body, "MediCare Hospital Team")
}
