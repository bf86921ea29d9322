package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gimnasio/gym-system/internal/core/ports"
)

type recordingNotifier struct {
	mu    sync.Mutex
	got   []ports.Notification
	fail  string
	count chan struct{}
}

func newRecordingNotifier(buffer int) *recordingNotifier {
	return &recordingNotifier{count: make(chan struct{}, buffer)}
}

func (r *recordingNotifier) Notify(_ context.Context, n ports.Notification) error {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
	r.count <- struct{}{}
	if n.Subject == r.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (r *recordingNotifier) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.count:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d notifications", i, n)
		}
	}
}

func (r *recordingNotifier) bySubject(subject string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.got {
		if n.Subject == subject {
			out = append(out, n.Message)
		}
	}
	return out
}

func TestDispatcher_PreservesOrderPerSubject(t *testing.T) {
	notifier := newRecordingNotifier(64)
	d := NewDispatcher(4, notifier, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	msgs := []string{"1", "2", "3", "4", "5"}
	for _, m := range msgs {
		d.Enqueue(ports.Notification{Kind: ports.NotifySocioUpdated, Subject: "socio-a", Message: m})
		d.Enqueue(ports.Notification{Kind: ports.NotifySocioUpdated, Subject: "socio-b", Message: m})
	}
	notifier.waitFor(t, 10)

	assert.Equal(t, msgs, notifier.bySubject("socio-a"))
	assert.Equal(t, msgs, notifier.bySubject("socio-b"))
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	notifier := newRecordingNotifier(8)
	notifier.fail = "bad"
	d := NewDispatcher(1, notifier, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.Notification{Subject: "bad", Message: "x"})
	d.Enqueue(ports.Notification{Subject: "good", Message: "y"})
	notifier.waitFor(t, 2)

	assert.Equal(t, []string{"y"}, notifier.bySubject("good"))
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	d := NewDispatcher(2, newRecordingNotifier(8), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	stopped := make(chan struct{})
	go func() {
		d.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, newRecordingNotifier(1), zerolog.Nop())

	first := d.shardIndex("socio-42")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, d.shardIndex("socio-42"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}
