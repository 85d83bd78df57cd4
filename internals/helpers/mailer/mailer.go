// file: internals/helpers/mailer/mailer.go
package mailer

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer dipakai dispatcher notifikasi untuk channel email (best-effort).
type Mailer interface {
	Send(toName, toEmail, subject, plainBody string) error
}

/* ===============================
   SendGrid mailer (produksi)
=================================*/

type SendgridMailer struct {
	key  string
	from *sgmail.Email
}

func NewSendgridMailer(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

func (m *SendgridMailer) Send(toName, toEmail, subject, plainBody string) error {
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(toName, toEmail), plainBody, "")
	res, err := sendgrid.NewSendClient(m.key).Send(msg)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

/* ===============================
   Console mailer (dev / tanpa API key)
=================================*/

type ConsoleMailer struct{}

func (ConsoleMailer) Send(toName, toEmail, subject, plainBody string) error {
	log.Printf("[MAIL] to=%s <%s> subject=%q\n%s", toName, toEmail, subject, plainBody)
	return nil
}
