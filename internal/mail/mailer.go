package mail

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/energyportfolio/crm-service/internal/config"
)

// Attachment is an in-memory file forwarded with a message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadingValue is one labelled meter register value, e.g. "Day/Normal
// Meter Reading".
type ReadingValue struct {
	Label string
	Value string
}

// MeterReading is the payload a client manager submits for one of their
// contracts. Readings are free-text; suppliers interpret them.
type MeterReading struct {
	FromEmail         string
	ClientName        string
	SiteAddress       string
	MpanMpr           string
	MeterSerialNumber string
	UtilityName       string
	SupplierName      string
	Readings          []ReadingValue
	ReadingDate       string
}

type Mailer struct {
	cfg config.MailConfig
	log zerolog.Logger
}

func NewMailer(cfg config.MailConfig, log zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendMeterReading mails the reading to the readings inbox and, when the
// supplier publishes one, the supplier's meter inbox too.
func (m *Mailer) SendMeterReading(reading MeterReading, supplierMeterEmail *string, attachment *Attachment) error {
	subject := "Meter Reading"
	if len(reading.Readings) > 1 {
		subject = "Meter Readings"
	}

	recipients := []string{m.cfg.MeterReadsTo}
	if supplierMeterEmail != nil && *supplierMeterEmail != "" {
		recipients = append(recipients, *supplierMeterEmail)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	if reading.FromEmail != "" {
		msg.SetHeader("Reply-To", reading.FromEmail)
	}
	msg.SetBody("text/html", renderMeterReading(reading))
	if attachment != nil {
		msg.Attach(attachment.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(attachment.Data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {attachment.ContentType},
			}),
		)
	}

	return m.send(msg, recipients)
}

// SendActivation mails the account activation link to a newly registered
// client manager.
func (m *Mailer) SendActivation(toEmail, name, token string) error {
	link := strings.TrimRight(m.cfg.ActivationURL, "/") + "/" + token

	var body bytes.Buffer
	fmt.Fprintf(&body, "<p>Hello %s,</p>", htmlEscape(name))
	body.WriteString("<p>Please activate your account by following the link below:</p>")
	fmt.Fprintf(&body, `<p><a href="%s">%s</a></p>`, link, link)
	body.WriteString("<p>If you did not register with us, please ignore this email.</p>")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Please activate your account")
	msg.SetBody("text/html", body.String())

	return m.send(msg, []string{toEmail})
}

func (m *Mailer) send(msg *gomail.Message, recipients []string) error {
	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Error().Err(err).Strs("to", recipients).Msg("failed to send email")
		return fmt.Errorf("invalid header found: %w", err)
	}
	m.log.Info().Strs("to", recipients).Msg("email sent")
	return nil
}

func renderMeterReading(reading MeterReading) string {
	var body bytes.Buffer
	body.WriteString("<p>A meter reading has been submitted.</p><table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&body, "<tr><td>%s</td><td>%s</td></tr>", htmlEscape(label), htmlEscape(value))
	}
	row("Client", reading.ClientName)
	row("Site Address", reading.SiteAddress)
	row("MPAN/MPR", reading.MpanMpr)
	row("Meter Serial Number", reading.MeterSerialNumber)
	row("Utility", reading.UtilityName)
	row("Supplier", reading.SupplierName)
	for _, r := range reading.Readings {
		row(r.Label, r.Value)
	}
	row("Reading Date", reading.ReadingDate)
	row("Submitted By", reading.FromEmail)
	body.WriteString("</table>")
	return body.String()
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}
