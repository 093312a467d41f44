package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	c.NotifyEnvironmentChanged(DefaultTimeout)
	c.NotifyEnvironmentChanged(time.Second)

	assert.Equal(t, 2, c.Calls)
	assert.Equal(t, []time.Duration{2 * time.Second, time.Second}, c.Timeouts)
}

func TestNotifierFunc(t *testing.T) {
	var got time.Duration
	var n Notifier = NotifierFunc(func(d time.Duration) { got = d })
	n.NotifyEnvironmentChanged(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, got)
}

func TestNewSystemDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSystem().NotifyEnvironmentChanged(10 * time.Millisecond)
	})
}
