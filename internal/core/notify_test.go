package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifierAddAndRemove(t *testing.T) {
	n := NewNotifier()
	defer n.Close()

	id := n.Add("OTP sent to +91-3210", "info", 0)
	require.NotEmpty(t, id)
	require.Len(t, n.List(), 1)

	n.Remove(id)
	require.Empty(t, n.List())

	// Unknown ids are ignored.
	n.Remove("nope")
}

func TestNotifierAutoDismiss(t *testing.T) {
	n := NewNotifier()
	defer n.Close()

	n.Add("short lived", "success", 20*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(n.List()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotifierCloseStopsTimers(t *testing.T) {
	n := NewNotifier()

	n.Add("pending", "info", time.Hour)
	n.Close()

	require.Empty(t, n.List())
	require.Empty(t, n.Add("after close", "info", 0))
}
