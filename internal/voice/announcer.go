package voice

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/banshee-data/holdmap/internal/monitoring"
	"github.com/banshee-data/holdmap/internal/timeutil"
	"github.com/banshee-data/holdmap/internal/wall"
)

// Options configures an Announcer.
type Options struct {
	Fields []Field        // nil means DefaultFields
	Gap    time.Duration  // pause between phrases
	Clock  timeutil.Clock // nil means the real clock
}

// Announcer speaks one description at a time in the background. A new
// announcement interrupts the one in progress; phrases never overlap.
type Announcer struct {
	speaker Speaker
	fields  []Field
	gap     time.Duration
	clock   timeutil.Clock

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

func NewAnnouncer(s Speaker, opts Options) *Announcer {
	a := &Announcer{
		speaker: s,
		fields:  opts.Fields,
		gap:     opts.Gap,
		clock:   opts.Clock,
	}
	if a.fields == nil {
		a.fields = DefaultFields()
	}
	if a.clock == nil {
		a.clock = timeutil.RealClock{}
	}
	return a
}

// Announce starts reading d aloud and returns immediately.
func (a *Announcer) Announce(d wall.Description) {
	a.start(Compose(d, a.fields))
}

// Say starts reading arbitrary phrases, e.g. an error message.
func (a *Announcer) Say(phrases ...string) {
	a.start(phrases)
}

func (a *Announcer) start(phrases []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	prev, done := a.done, make(chan struct{})
	a.cancel, a.done = cancel, done

	go func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		a.run(ctx, phrases)
	}()
}

func (a *Announcer) run(ctx context.Context, phrases []string) {
	for i, p := range phrases {
		if ctx.Err() != nil {
			return
		}
		if err := a.speaker.Speak(ctx, p); err != nil {
			if !errors.Is(err, context.Canceled) {
				monitoring.L().Warn("speech failed", zap.String("phrase", p), zap.Error(err))
			}
			return
		}
		if i == len(phrases)-1 || a.gap <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-a.clock.After(a.gap):
		}
	}
}

// Stop silences the current announcement and waits for it to end.
func (a *Announcer) Stop() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	done := a.done
	a.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Wait blocks until the current announcement has finished on its own.
func (a *Announcer) Wait() {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops speech and rejects further announcements.
func (a *Announcer) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	a.Stop()
}
