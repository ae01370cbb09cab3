package mailer

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

// Message is a fully rendered notification mail.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends notification mails over SMTP. A Mailer without configuration
// is valid, sending through it is a no-op. Notifications are best-effort,
// they never fail the request that triggered them.
type Mailer struct {
	client *gomail.Client
	from   string
}

// FromEnv configures the Mailer from the environment.
//
// If MAIL_SMTP_HOST is not set, mail sending is disabled.
func FromEnv() (*Mailer, error) {
	host := os.Getenv("MAIL_SMTP_HOST")
	if host == "" {
		return &Mailer{}, nil
	}

	from := os.Getenv("MAIL_FROM")
	if from == "" {
		return nil, fmt.Errorf("MAIL_FROM must be set when MAIL_SMTP_HOST is set")
	}

	port := 587
	if raw, ok := os.LookupEnv("MAIL_SMTP_PORT"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAIL_SMTP_PORT must be a number: %w", err)
		}
		port = parsed
	}

	options := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}

	if username, ok := os.LookupEnv("MAIL_SMTP_USERNAME"); ok {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(os.Getenv("MAIL_SMTP_PASSWORD")),
		)
	}

	client, err := gomail.NewClient(host, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mail client: %w", err)
	}

	return &Mailer{client: client, from: from}, nil
}

// Enabled reports whether the Mailer has an SMTP configuration.
func (m *Mailer) Enabled() bool {
	return m != nil && m.client != nil
}

// Send delivers the message. With mail sending disabled it does nothing.
func (m *Mailer) Send(message Message) error {
	if !m.Enabled() {
		log.Debug().Str("subject", message.Subject).Msg("mail sending is disabled, skipping notification")
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.Text)
	if message.HTML != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, message.HTML)
	}

	return m.client.DialAndSend(msg)
}

// SendAsync delivers the message in the background. Failures are logged,
// never returned, the triggering request has already been answered.
func (m *Mailer) SendAsync(message Message) {
	go func() {
		if err := m.Send(message); err != nil {
			log.Error().Err(err).Str("subject", message.Subject).Msg("failed to send notification mail")
		}
	}()
}
