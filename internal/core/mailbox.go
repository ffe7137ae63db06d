package core

import (
	"context"
	"time"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/store"
)

// Mailbox simulates per-phone SMS delivery through the shared persistent
// store. Each phone number owns a single message slot; sending overwrites
// whatever was there. Consumers poll the slot rather than subscribe — this
// channel models a one-slot mailbox, not a queue with delivery guarantees.
type Mailbox struct {
	store *store.Store
}

// NewMailbox constructs a Mailbox over the shared store.
func NewMailbox(st *store.Store) *Mailbox {
	return &Mailbox{store: st}
}

func mailboxKey(phone string) string {
	return "mock_sms_" + phone
}

// Send overwrites the pending message slot for phone.
func (m *Mailbox) Send(phone string, msg models.SmsMessage) error {
	if err := m.store.Put(mailboxKey(phone), msg); err != nil {
		return storageErr(err)
	}
	return nil
}

// Read returns the current message for phone, if any.
func (m *Mailbox) Read(phone string) (models.SmsMessage, bool, error) {
	var msg models.SmsMessage
	ok, err := m.store.Get(mailboxKey(phone), &msg)
	if err != nil {
		return models.SmsMessage{}, false, storageErr(err)
	}
	return msg, ok, nil
}

// Clear deletes the message slot for phone.
func (m *Mailbox) Clear(phone string) error {
	if err := m.store.Delete(mailboxKey(phone)); err != nil {
		return storageErr(err)
	}
	return nil
}

// Watch polls the slot for phone on the given interval and delivers the
// current message whenever one is present, until ctx is cancelled. The
// ticker is stopped on cancellation so no callback outlives the viewer that
// opened it.
func (m *Mailbox) Watch(ctx context.Context, phone string, interval time.Duration) <-chan models.SmsMessage {
	out := make(chan models.SmsMessage, 1)

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				msg, ok, err := m.Read(phone)
				if err != nil || !ok {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
