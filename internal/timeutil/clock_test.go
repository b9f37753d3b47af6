package timeutil

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_NewTimer(t *testing.T) {
	timer := RealClock{}.NewTimer(10 * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Error("timer did not fire")
	}
}

func TestMockClock_Set(t *testing.T) {
	clock := NewMockClock(time.Time{})
	clock.Set(epoch)
	if !clock.Now().Equal(epoch) {
		t.Errorf("got %v, want %v", clock.Now(), epoch)
	}
}

func TestMockClock_AfterFiresOnAdvance(t *testing.T) {
	clock := NewMockClock(epoch)
	ch := clock.After(500 * time.Millisecond)

	clock.Advance(499 * time.Millisecond)
	select {
	case <-ch:
		t.Fatal("fired before deadline")
	default:
	}
	if got := clock.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}

	clock.Advance(time.Millisecond)
	select {
	case got := <-ch:
		if want := epoch.Add(500 * time.Millisecond); !got.Equal(want) {
			t.Errorf("fired at %v, want %v", got, want)
		}
	default:
		t.Fatal("did not fire at deadline")
	}
	if got := clock.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestMockClock_ZeroDurationFiresImmediately(t *testing.T) {
	clock := NewMockClock(epoch)
	select {
	case <-clock.After(0):
	default:
		t.Fatal("zero-duration timer should fire without advancing")
	}
}

func TestMockTimer_StopAndReset(t *testing.T) {
	clock := NewMockClock(epoch)
	timer := clock.NewTimer(time.Second)

	if !timer.Stop() {
		t.Error("Stop() on an armed timer should return true")
	}
	clock.Advance(2 * time.Second)
	select {
	case <-timer.C():
		t.Fatal("stopped timer fired")
	default:
	}

	if timer.Reset(time.Second) {
		t.Error("Reset() on a stopped timer should return false")
	}
	clock.Advance(999 * time.Millisecond)
	select {
	case <-timer.C():
		t.Fatal("reset timer fired early")
	default:
	}
	clock.Advance(time.Millisecond)
	select {
	case <-timer.C():
	default:
		t.Fatal("reset timer did not fire")
	}
}
