package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/pkg/clock"
	"talazo-api/internal/pkg/config"
	"talazo-api/internal/pkg/errs"
	"talazo-api/internal/pkg/mailer"
	"talazo-api/internal/usecase/commands"
)

const customerSubject = "Booking Confirmation - Talazo Agritech Farm Assessment"

// Notifier sends the two booking emails (customer confirmation and admin
// alert) through the configured mailer. Delivery is best-effort: failures are
// logged and recorded in notification_logs but never surfaced to the caller.
type Notifier struct {
	mailer mailer.Mailer
	logs   commands.NotificationLogRepository
	cfg    config.MailConfig
	clock  clock.Clock
}

func NewNotifier(
	m mailer.Mailer,
	logs commands.NotificationLogRepository,
	cfg config.MailConfig,
	clk clock.Clock,
) *Notifier {
	return &Notifier{mailer: m, logs: logs, cfg: cfg, clock: clk}
}

// NotifyBookingCreated sends both emails concurrently and waits for both to
// finish. One email failing does not stop the other.
func (n *Notifier) NotifyBookingCreated(ctx context.Context, b *booking.Booking) {
	data := emailData{
		BookingID:         b.ID().String(),
		FirstName:         b.FirstName(),
		LastName:          b.LastName(),
		Email:             b.Email(),
		Phone:             b.Phone(),
		FarmSize:          b.FarmSize(),
		FarmLocation:      b.FarmLocation(),
		CropTypes:         b.CropTypes(),
		FarmingExperience: b.FarmingExperience(),
		CurrentChallenges: b.CurrentChallenges(),
		PreferredDate:     b.PreferredDate(),
		AdditionalNotes:   b.AdditionalNotes(),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		n.send(ctx, b.ID(), commands.NotificationTypeUserConfirmation, customerTmpl, data, mailer.Message{
			From:    n.cfg.CustomerFrom,
			To:      b.Email(),
			Subject: customerSubject,
		})
	}()
	go func() {
		defer wg.Done()
		n.send(ctx, b.ID(), commands.NotificationTypeAdminNotification, adminTmpl, data, mailer.Message{
			From:    n.cfg.AdminFrom,
			To:      n.cfg.AdminEmail,
			Subject: fmt.Sprintf("New Farm Assessment Booking - %s %s", b.FirstName(), b.LastName()),
		})
	}()
	wg.Wait()
}

func (n *Notifier) send(
	ctx context.Context,
	bookingID uuid.UUID,
	notificationType string,
	tmpl *template.Template,
	data emailData,
	msg mailer.Message,
) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		n.record(ctx, bookingID, notificationType, msg, commands.NotificationStatusFailed, "", errs.Wrap(err, "failed to render email template"))
		return
	}
	msg.HTML = buf.String()

	serviceID, err := n.mailer.Send(ctx, msg)
	if err != nil {
		n.record(ctx, bookingID, notificationType, msg, commands.NotificationStatusFailed, "", err)
		return
	}
	n.record(ctx, bookingID, notificationType, msg, commands.NotificationStatusSent, serviceID, nil)
}

func (n *Notifier) record(
	ctx context.Context,
	bookingID uuid.UUID,
	notificationType string,
	msg mailer.Message,
	status string,
	serviceID string,
	sendErr error,
) {
	now := n.clock.Now()
	entry := commands.NotificationLogEntry{
		BookingID: bookingID,
		Type:      notificationType,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Status:    status,
		CreatedAt: now,
	}
	if sendErr != nil {
		errMsg := sendErr.Error()
		entry.ErrorMessage = &errMsg
		slog.Warn("booking email delivery failed",
			"booking_id", bookingID.String(),
			"type", notificationType,
			"error", sendErr,
		)
	} else {
		entry.ServiceID = &serviceID
		entry.SentAt = &now
	}

	if err := n.logs.Record(ctx, entry); err != nil {
		slog.Warn("failed to record notification outcome",
			"booking_id", bookingID.String(),
			"type", notificationType,
			"error", err,
		)
	}
}
