package notify

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call) Runner {
	return func(name string, args ...string) error {
		*calls = append(*calls, call{name, args})
		return nil
	}
}

func TestSendLevelUp(t *testing.T) {
	var calls []call
	n := NewNotifier().WithRunner(recorder(&calls))

	require.NoError(t, n.SendLevelUp("Mochi", 3, false))
	require.Len(t, calls, 1)
	assert.Equal(t, "notify-send", calls[0].name)
	assert.Equal(t, []string{"-u", "low", "-t", "5000", "-i", "starred-symbolic", "-a", "habitpet", "Level up!", "Mochi reached level 3!"}, calls[0].args)

	require.NoError(t, n.SendLevelUp("Mochi", 10, true))
	assert.Equal(t, "Mochi is fully grown!", calls[1].args[len(calls[1].args)-1])
}

func TestNotificationArgs(t *testing.T) {
	tests := []struct {
		name string
		nt   Notification
		want []string
	}{
		{
			name: "title only",
			nt:   Notification{Title: "Hi", Urgency: UrgencyNormal},
			want: []string{"-u", "normal", "-a", "habitpet", "Hi"},
		},
		{
			name: "critical with body",
			nt:   Notification{Title: "Hi", Body: "there", Urgency: UrgencyCritical},
			want: []string{"-u", "critical", "-a", "habitpet", "Hi", "there"},
		},
		{
			name: "sub-millisecond timeout dropped",
			nt:   Notification{Title: "Hi", Timeout: 500 * time.Microsecond},
			want: []string{"-u", "low", "-a", "habitpet", "Hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.nt.Args())
		})
	}
}

func TestDisabledSendsNothing(t *testing.T) {
	var calls []call
	n := NewNotifier().WithRunner(recorder(&calls))
	n.SetEnabled(false)

	require.NoError(t, n.SendLevelUp("Mochi", 2, false))
	assert.Empty(t, calls)

	// opening a page is an explicit user action
	require.NoError(t, n.OpenURL("https://example.com"))
	assert.Len(t, calls, 1)
}

func TestOpenURL(t *testing.T) {
	var calls []call
	n := NewNotifier().WithRunner(recorder(&calls))

	assert.Error(t, n.OpenURL(""))
	require.NoError(t, n.OpenURL("https://example.com"))
	require.Len(t, calls, 1)
	if runtime.GOOS == "linux" {
		assert.Equal(t, call{"xdg-open", []string{"https://example.com"}}, calls[0])
	}
}
