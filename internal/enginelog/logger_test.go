package enginelog

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestEnqueueNeverBlocksWhenFull(t *testing.T) {
	l := New(logrus.New(), 2)
	l.Error(nil, "one")
	l.Error(nil, "two")

	done := make(chan struct{})
	go func() {
		l.Error(nil, "three") // must not block even though the channel is full
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Error blocked on a full channel")
	}
	require.Equal(t, uint64(1), l.Dropped())
}

func TestRunDrainsEntriesAfterCancel(t *testing.T) {
	out := logrus.New()
	l := New(out, 16)
	l.Info(logrus.Fields{"k": "v"}, "hello")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Run(ctx) // should drain the one pending entry and return promptly
}
