package serviceutil

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignalContextCancels(t *testing.T) {
	ctx := SignalContext()

	err := syscall.Kill(syscall.Getpid(), syscall.SIGINT)
	require.NoError(t, err)

	select {
	case <-ctx.Done():
	case <-time.After(time.Second * 5):
		t.Fatal("context was not canceled by the signal")
	}
}
