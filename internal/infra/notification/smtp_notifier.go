// Package notification delivers customer-facing booking confirmations.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"booking/config"
	"booking/internal/domain/entity"
	"booking/internal/domain/schedule"
	"booking/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

const qrAttachmentName = "meet-qr.png"

// French calendar names for the confirmation body; time.Format only knows
// English.
var (
	frenchWeekdays = [...]string{
		"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
	}
	frenchMonths = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

type smtpNotifier struct {
	client *mail.Client
	from   string
	qr     service.QRCodeService
	logger *slog.Logger
}

// NewSMTPNotifier creates the email confirmation notifier. Returns a nil
// notifier when SMTP is not configured; callers treat nil as "confirmations
// disabled".
func NewSMTPNotifier(cfg *config.Config, qr service.QRCodeService, logger *slog.Logger) (service.BookingNotifier, error) {
	smtpCfg := cfg.SMTP
	if smtpCfg == nil || smtpCfg.Host == "" {
		logger.Warn("SMTP is not configured, booking confirmations disabled")

		return nil, nil
	}

	client, err := mail.NewClient(smtpCfg.Host,
		mail.WithPort(smtpCfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(smtpCfg.Username),
		mail.WithPassword(smtpCfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	return &smtpNotifier{
		client: client,
		from:   smtpCfg.From,
		qr:     qr,
		logger: logger,
	}, nil
}

// SendBookingConfirmation emails the customer the appointment time and the
// Meet link, with an inline QR code when one can be generated.
func (n *smtpNotifier) SendBookingConfirmation(ctx context.Context, record *entity.BookingRecord) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(record.Email); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}

	start := record.Start.In(schedule.HomeLocation())
	msg.Subject(fmt.Sprintf("Confirmation de votre rendez-vous du %s", frenchDate(start)))
	msg.SetBodyString(mail.TypeTextPlain, n.plainBody(record, start))
	msg.AddAlternativeString(mail.TypeTextHTML, n.htmlBody(record, start))

	n.embedQR(msg, record)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send confirmation email")
	}

	n.logger.Info("booking confirmation sent",
		slog.String("booking_id", record.ID.String()),
		slog.String("email", record.Email),
	)

	return nil
}

// embedQR attaches a QR image of the Meet link. Best-effort: a QR failure
// only downgrades the email, it never blocks it.
func (n *smtpNotifier) embedQR(msg *mail.Msg, record *entity.BookingRecord) {
	if n.qr == nil || record.MeetLink == "" {
		return
	}

	png, err := n.qr.GeneratePNG(record.MeetLink)
	if err != nil {
		n.logger.Warn("QR code generation failed, sending confirmation without it",
			slog.Any("error", err),
		)

		return
	}

	if err := msg.EmbedReader(qrAttachmentName, bytes.NewReader(png)); err != nil {
		n.logger.Warn("QR code embedding failed, sending confirmation without it",
			slog.Any("error", err),
		)
	}
}

func (n *smtpNotifier) plainBody(record *entity.BookingRecord, start time.Time) string {
	body := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Votre rendez-vous est confirmé pour le %s à %s (heure de Jérusalem).\n",
		record.Name, frenchDate(start), start.Format("15:04"),
	)
	if record.MeetLink != "" {
		body += fmt.Sprintf("\nLien de visioconférence : %s\n", record.MeetLink)
	}
	body += "\nÀ bientôt !\n"

	return body
}

func (n *smtpNotifier) htmlBody(record *entity.BookingRecord, start time.Time) string {
	body := fmt.Sprintf(
		"<p>Bonjour %s,</p>"+
			"<p>Votre rendez-vous est confirmé pour le <strong>%s à %s</strong> (heure de Jérusalem).</p>",
		record.Name, frenchDate(start), start.Format("15:04"),
	)
	if record.MeetLink != "" {
		body += fmt.Sprintf(
			`<p>Lien de visioconférence : <a href="%s">%s</a></p>`+
				`<p><img src="cid:%s" alt="QR code du lien Meet" width="200" height="200"></p>`,
			record.MeetLink, record.MeetLink, qrAttachmentName,
		)
	}
	body += "<p>À bientôt !</p>"

	return body
}

// frenchDate renders "jeudi 26 février 2026".
func frenchDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d",
		frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year())
}
