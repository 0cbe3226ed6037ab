package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

// MailNotifier sends alerts over an implicit-TLS SMTP session, one session
// per message.
type MailNotifier struct {
	Host      string
	Port      int
	Address   string
	Password  string
	Recipient string
	Timeout   time.Duration
}

// NewMailNotifier creates a notifier that authenticates as address and
// delivers to recipient.
func NewMailNotifier(host string, port int, address, password, recipient string, timeout time.Duration) *MailNotifier {
	return &MailNotifier{
		Host:      host,
		Port:      port,
		Address:   address,
		Password:  password,
		Recipient: recipient,
		Timeout:   timeout,
	}
}

// Send makes a single delivery attempt.
func (n *MailNotifier) Send(ctx context.Context, subject, body string) error {
	msg, err := n.buildMessage(subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.Host,
		mail.WithPort(n.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.Address),
		mail.WithPassword(n.Password),
		mail.WithTimeout(n.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail %q: %w", subject, err)
	}
	log.Printf("[INFO] mail sent to %s: %s", n.Recipient, subject)
	return nil
}

func (n *MailNotifier) buildMessage(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.Address); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(n.Recipient); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
