package domain_test

import (
	"math"
	"testing"

	"lumina/internal/modules/playback/domain"
)

func TestTransitions(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	if c.State() != domain.StateIdle {
		t.Fatalf("expected idle, got %s", c.State())
	}

	c.Open()
	if c.State() != domain.StateViewing {
		t.Fatalf("expected viewing after open, got %s", c.State())
	}

	if !c.Play(0) {
		t.Fatalf("play from viewing must succeed")
	}
	if c.State() != domain.StateScrolling {
		t.Fatalf("expected scrolling after play, got %s", c.State())
	}

	c.Pause()
	if c.State() != domain.StateViewing {
		t.Fatalf("expected viewing after pause, got %s", c.State())
	}

	c.Close()
	if c.State() != domain.StateIdle {
		t.Fatalf("expected idle after close, got %s", c.State())
	}
}

func TestPlayRequiresViewing(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	if c.Play(0) {
		t.Fatalf("play from idle must be rejected")
	}
	c.Open()
	c.Play(0)
	if c.Play(0) {
		t.Fatalf("play while already scrolling must be rejected")
	}
}

func TestAccumulatorIsDeterministic(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	c.Open()
	c.SetSpeed(2.0)
	c.Play(100)

	epoch := c.Epoch()
	for i := 0; i < 5; i++ {
		if !c.Tick(epoch) {
			t.Fatalf("tick %d must apply", i)
		}
	}
	if math.Abs(c.Position()-110) > 1e-9 {
		t.Fatalf("expected position 110 after 5 ticks at speed 2.0, got %v", c.Position())
	}
}

func TestStaleTickAfterPauseDoesNotAdvance(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	c.Open()
	c.Play(50)
	epoch := c.Epoch()
	c.Tick(epoch)
	before := c.Position()

	c.Pause()
	if c.Tick(epoch) {
		t.Fatalf("tick scheduled before pause must not apply after it")
	}
	if c.Position() != before {
		t.Fatalf("position moved from %v to %v by a stale tick", before, c.Position())
	}

	// Same guarantee across close.
	c.Play(before)
	epoch = c.Epoch()
	c.Close()
	if c.Tick(epoch) {
		t.Fatalf("tick scheduled before close must not apply after it")
	}
}

func TestPositionOnlyAdvancesWhileScrolling(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	c.Open()
	if c.Tick(c.Epoch()) {
		t.Fatalf("tick in viewing state must be a no-op")
	}
	if c.Position() != 0 {
		t.Fatalf("position must not move outside scrolling, got %v", c.Position())
	}
}

func TestSpeedClampAndStep(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	if c.Speed() != domain.DefaultSpeed {
		t.Fatalf("expected default speed %v, got %v", domain.DefaultSpeed, c.Speed())
	}
	if got := c.SetSpeed(100); got != domain.MaxSpeed {
		t.Fatalf("expected clamp to %v, got %v", domain.MaxSpeed, got)
	}
	if got := c.SetSpeed(0); got != domain.MinSpeed {
		t.Fatalf("expected clamp to %v, got %v", domain.MinSpeed, got)
	}
	if got := c.SetSpeed(1.2345); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("expected quantization to 1.2, got %v", got)
	}
}

func TestSpeedSurvivesPause(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	c.Open()
	c.SetSpeed(3.5)
	c.Play(0)
	c.Pause()
	if math.Abs(c.Speed()-3.5) > 1e-9 {
		t.Fatalf("pause must not reset speed, got %v", c.Speed())
	}
	c.Play(0)
	epoch := c.Epoch()
	c.Tick(epoch)
	if math.Abs(c.Position()-3.5) > 1e-9 {
		t.Fatalf("expected resume at preserved speed, got position %v", c.Position())
	}
}

func TestAdjustSpeed(t *testing.T) {
	t.Parallel()
	c := domain.NewController()
	c.AdjustSpeed(domain.SpeedStep)
	if math.Abs(c.Speed()-1.1) > 1e-9 {
		t.Fatalf("expected 1.1, got %v", c.Speed())
	}
	for i := 0; i < 200; i++ {
		c.AdjustSpeed(domain.SpeedStep)
	}
	if c.Speed() != domain.MaxSpeed {
		t.Fatalf("expected clamp at %v, got %v", domain.MaxSpeed, c.Speed())
	}
}
