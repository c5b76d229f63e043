package mailer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// ErrDisabled is returned when outbound email is switched off in the
// SMTP settings document. Callers that send courtesy mail treat it as
// a no-op; callers that send on explicit request surface it.
var ErrDisabled = errors.New("smtp is disabled")

// Attachment is a file attached to an outgoing message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outgoing email
type Message struct {
	To          []string
	Subject     string
	Body        string
	HTML        bool
	Attachments []Attachment
}

// Sender delivers email messages
type Sender interface {
	Send(msg *Message) error
}

// SMTPSender sends mail through the SMTP server configured in the
// smtp settings document. Settings are re-read on every send so admin
// changes apply without a restart.
type SMTPSender struct {
	store *docstore.Store
}

// NewSMTPSender creates an SMTP sender backed by the document store
func NewSMTPSender(store *docstore.Store) *SMTPSender {
	return &SMTPSender{store: store}
}

// Send delivers msg to every recipient in a single SMTP transaction
func (s *SMTPSender) Send(msg *Message) error {
	var settings models.SMTPSettings
	if err := s.store.Read(docstore.DocSMTP, &settings); err != nil {
		return fmt.Errorf("failed to load smtp settings: %w", err)
	}

	if !settings.Enabled {
		return ErrDisabled
	}
	if settings.Host == "" || settings.From == "" {
		return fmt.Errorf("smtp settings are incomplete")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	port := settings.Port
	if port == 0 {
		port = 587
	}

	payload := buildMIME(settings, msg)

	addr := fmt.Sprintf("%s:%d", settings.Host, port)
	var auth smtp.Auth
	if settings.Username != "" {
		auth = smtp.PlainAuth("", settings.Username, settings.Password, settings.Host)
	}

	if err := smtp.SendMail(addr, auth, settings.From, msg.To, payload); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func buildMIME(settings models.SMTPSettings, msg *Message) []byte {
	var buf bytes.Buffer

	from := settings.From
	if settings.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", settings.FromName), settings.From)
	}

	contentType := "text/plain; charset=utf-8"
	if msg.HTML {
		contentType = "text/html; charset=utf-8"
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(msg.Attachments) == 0 {
		fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", contentType)
		buf.WriteString(msg.Body)
		return buf.Bytes()
	}

	boundary := fmt.Sprintf("lokanta-%d", time.Now().UnixNano())
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", contentType)
	buf.WriteString(msg.Body)
	buf.WriteString("\r\n")

	for _, att := range msg.Attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", att.Filename)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
		buf.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(att.Data)))
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// wrapBase64 folds encoded content to 76-character lines per RFC 2045
func wrapBase64(encoded string) string {
	const lineLen = 76
	var b strings.Builder
	for len(encoded) > lineLen {
		b.WriteString(encoded[:lineLen])
		b.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	b.WriteString(encoded)
	return b.String()
}
