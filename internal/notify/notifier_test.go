//go:build unit

package notify_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"talazo-api/internal/notify"
	"talazo-api/internal/pkg/clock"
	"talazo-api/internal/pkg/config"
	"talazo-api/internal/pkg/mailer"
	"talazo-api/internal/usecase/commands"
	"talazo-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	commandsmock "talazo-api/tests/mock/commands"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []mailer.Message
	failTo  string
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo != "" && msg.To == f.failTo {
		return "", f.sendErr
	}
	f.sent = append(f.sent, msg)
	return "re_" + msg.To, nil
}

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		ResendAPIKey: "test-key",
		CustomerFrom: "Talazo Agritech <onboarding@resend.dev>",
		AdminFrom:    "Talazo Bookings <onboarding@resend.dev>",
		AdminEmail:   "admin@talazoagritech.com",
	}
}

func TestNotifyBookingCreated(t *testing.T) {
	t.Run("sends customer confirmation and admin alert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logs := commandsmock.NewMockNotificationLogRepository(ctrl)
		fm := &fakeMailer{}

		b, err := builder.NewBookingBuilder().WithAdditionalNotes("call ahead").BuildDomain()
		require.NoError(t, err)

		var (
			mu       sync.Mutex
			recorded []commands.NotificationLogEntry
		)
		logs.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e commands.NotificationLogEntry) error {
				mu.Lock()
				defer mu.Unlock()
				recorded = append(recorded, e)
				return nil
			}).Times(2)

		n := notify.NewNotifier(fm, logs, testMailConfig(), clock.NewMockClock(time.Now()))
		n.NotifyBookingCreated(context.Background(), b)

		require.Len(t, fm.sent, 2)
		sort.Slice(fm.sent, func(i, j int) bool { return fm.sent[i].To < fm.sent[j].To })

		admin, customer := fm.sent[0], fm.sent[1]
		assert.Equal(t, "admin@talazoagritech.com", admin.To)
		assert.Equal(t, "New Farm Assessment Booking - Tendai Moyo", admin.Subject)
		assert.Contains(t, admin.HTML, b.ID().String())
		assert.Contains(t, admin.HTML, "call ahead")

		assert.Equal(t, b.Email(), customer.To)
		assert.Equal(t, "Booking Confirmation - Talazo Agritech Farm Assessment", customer.Subject)
		assert.Contains(t, customer.HTML, "Hello Tendai")

		require.Len(t, recorded, 2)
		for _, e := range recorded {
			assert.Equal(t, b.ID(), e.BookingID)
			assert.Equal(t, commands.NotificationStatusSent, e.Status)
			assert.NotNil(t, e.ServiceID)
			assert.NotNil(t, e.SentAt)
		}
	})

	t.Run("one failed email never blocks the other", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logs := commandsmock.NewMockNotificationLogRepository(ctrl)

		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		fm := &fakeMailer{failTo: b.Email(), sendErr: errors.New("resend unavailable")}

		statuses := map[string]string{}
		var mu sync.Mutex
		logs.EXPECT().Record(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e commands.NotificationLogEntry) error {
				mu.Lock()
				defer mu.Unlock()
				statuses[e.Type] = e.Status
				return nil
			}).Times(2)

		n := notify.NewNotifier(fm, logs, testMailConfig(), clock.NewMockClock(time.Now()))
		n.NotifyBookingCreated(context.Background(), b)

		require.Len(t, fm.sent, 1)
		assert.Equal(t, "admin@talazoagritech.com", fm.sent[0].To)
		assert.Equal(t, commands.NotificationStatusFailed, statuses[commands.NotificationTypeUserConfirmation])
		assert.Equal(t, commands.NotificationStatusSent, statuses[commands.NotificationTypeAdminNotification])
	})

	t.Run("log write failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logs := commandsmock.NewMockNotificationLogRepository(ctrl)
		fm := &fakeMailer{}

		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		logs.EXPECT().Record(gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed")).Times(2)

		n := notify.NewNotifier(fm, logs, testMailConfig(), clock.NewMockClock(time.Now()))
		n.NotifyBookingCreated(context.Background(), b)

		assert.Len(t, fm.sent, 2)
	})
}
