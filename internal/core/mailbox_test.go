package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/bazaar/internal/models"
)

func TestMailboxSendOverwritesSlot(t *testing.T) {
	mb := NewMailbox(openTestStore(t))

	require.NoError(t, mb.Send("9876543210", models.SmsMessage{Type: models.SmsTypeOtp, Otp: "1111"}))
	require.NoError(t, mb.Send("9876543210", models.SmsMessage{Type: models.SmsTypeOtp, Otp: "2222"}))

	msg, ok, err := mb.Read("9876543210")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2222", msg.Otp)
}

func TestMailboxSlotsArePerPhone(t *testing.T) {
	mb := NewMailbox(openTestStore(t))

	require.NoError(t, mb.Send("9876543210", models.SmsMessage{Type: models.SmsTypeOtp, Otp: "1111"}))

	_, ok, err := mb.Read("9000000001")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMailboxClear(t *testing.T) {
	mb := NewMailbox(openTestStore(t))

	require.NoError(t, mb.Send("9876543210", models.SmsMessage{Type: models.SmsTypeOtp, Otp: "1111"}))
	require.NoError(t, mb.Clear("9876543210"))

	_, ok, err := mb.Read("9876543210")
	require.NoError(t, err)
	require.False(t, ok)

	// Clearing an empty slot is fine.
	require.NoError(t, mb.Clear("9876543210"))
}

func TestMailboxWatchDeliversAndStops(t *testing.T) {
	mb := NewMailbox(openTestStore(t))
	require.NoError(t, mb.Send("9876543210", models.SmsMessage{Type: models.SmsTypeOtp, Otp: "4321"}))

	ctx, cancel := context.WithCancel(context.Background())
	ch := mb.Watch(ctx, "9876543210", 10*time.Millisecond)

	select {
	case msg := <-ch:
		require.Equal(t, "4321", msg.Otp)
	case <-time.After(2 * time.Second):
		t.Fatal("watch never delivered the pending message")
	}

	cancel()

	// Buffered deliveries may still drain; the channel must close soon after.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-ch:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancellation")
		}
	}
}
