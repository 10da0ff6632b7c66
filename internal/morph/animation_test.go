package morph

import (
	"math"
	"testing"
	"time"
)

func newTestAnimation(clock *fakeClock) *Animation {
	return New(Options{
		Rand:          NewSource(11),
		Clock:         clock,
		Palette:       testPalette,
		ViewWidth:     1000,
		DisperseDelay: 500 * time.Millisecond,
	})
}

func TestAnimation_DisperseThenReform(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	anim := newTestAnimation(clock)

	if anim.Phase() != PhaseIdle {
		t.Fatalf("Expected idle phase, got %v", anim.Phase())
	}

	anim.Retarget(make([]Sample, 3))
	if anim.Phase() != PhaseDispersing {
		t.Fatalf("Expected dispersing phase, got %v", anim.Phase())
	}
	anim.Update()
	if anim.Len() != 0 {
		t.Fatalf("Expected no agents before the delay, got %d", anim.Len())
	}

	clock.Advance(499 * time.Millisecond)
	anim.Update()
	if anim.Len() != 0 || anim.Phase() != PhaseDispersing {
		t.Fatalf("Reformed too early: len=%d phase=%v", anim.Len(), anim.Phase())
	}

	clock.Advance(time.Millisecond)
	anim.Update()
	if anim.Len() != 3 || anim.Phase() != PhaseReforming {
		t.Fatalf("Expected reform with 3 agents, got len=%d phase=%v", anim.Len(), anim.Phase())
	}
	if anim.Shown() != 3 {
		t.Errorf("Expected 3 shown agents, got %d", anim.Shown())
	}
}

func TestAnimation_ReformEndsIdle(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	anim := newTestAnimation(clock)

	anim.Retarget(make([]Sample, 8))
	clock.Advance(time.Second)
	anim.Update()
	if anim.Phase() != PhaseReforming {
		t.Fatalf("Expected reforming after the delay, got %v", anim.Phase())
	}

	ticks := 0
	for ; ticks < 10000 && anim.Phase() == PhaseReforming; ticks++ {
		anim.Update()
	}
	if anim.Phase() != PhaseIdle {
		t.Fatalf("Expected idle once the reform settles, still %v after %d ticks", anim.Phase(), ticks)
	}
	for i, a := range anim.Snapshot(nil) {
		if d := a.Current.Dist(a.Target); d > 0.5 {
			t.Errorf("agent %d idle but %.2f from its target", i, d)
		}
	}

	anim.Update()
	if anim.Phase() != PhaseIdle {
		t.Errorf("Expected to stay idle, got %v", anim.Phase())
	}
	anim.Retarget(make([]Sample, 2))
	if anim.Phase() != PhaseDispersing {
		t.Errorf("Expected a new trigger to disperse from idle, got %v", anim.Phase())
	}
}

func TestAnimation_RetargetDispersesExistingAgents(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	anim := newTestAnimation(clock)
	anim.Retarget(make([]Sample, 4))
	clock.Advance(time.Second)
	anim.Update()

	before := anim.Snapshot(nil)
	anim.Retarget([]Sample{{X: 10, Y: 10}})
	after := anim.Snapshot(nil)

	if len(after) != len(before) {
		t.Fatalf("pool size changed on disperse: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i].Current != before[i].Current {
			t.Errorf("agent %d current moved on disperse", i)
		}
		if d := math.Hypot(after[i].Target.X, after[i].Target.Y); d > 1000+1e-9 {
			t.Errorf("agent %d not dispersed near the centre: %v", i, d)
		}
	}

	clock.Advance(time.Second)
	anim.Update()
	if anim.Len() != 4 || anim.Shown() != 1 {
		t.Errorf("Expected 4 agents with 1 shown, got %d/%d", anim.Len(), anim.Shown())
	}
}

func TestAnimation_SecondTriggerRestartsDelay(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	anim := newTestAnimation(clock)

	anim.Retarget(make([]Sample, 2))
	clock.Advance(400 * time.Millisecond)
	anim.Retarget(make([]Sample, 5))

	clock.Advance(200 * time.Millisecond)
	anim.Update()
	if anim.Len() != 0 {
		t.Fatalf("Expected restarted delay, pool already has %d agents", anim.Len())
	}

	clock.Advance(300 * time.Millisecond)
	anim.Update()
	if anim.Len() != 5 {
		t.Errorf("Expected the latest samples to win, got %d agents", anim.Len())
	}
}

func TestAnimation_RetargetCopiesSamples(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	anim := newTestAnimation(clock)

	samples := []Sample{{X: 120, Y: 60}}
	anim.Retarget(samples)
	samples[0] = Sample{X: 10000, Y: 10000}

	clock.Advance(time.Second)
	anim.Update()
	if tg := anim.Snapshot(nil)[0].Target; math.Abs(tg.X) > 30 || math.Abs(tg.Y) > 30 {
		t.Errorf("Reform used caller-mutated samples: %+v", tg)
	}
}

func TestAnimation_SetViewWidth(t *testing.T) {
	anim := newTestAnimation(&fakeClock{})
	anim.SetViewWidth(-1)
	if anim.ViewWidth() != 1000 {
		t.Errorf("Expected invalid width to be ignored, got %v", anim.ViewWidth())
	}
	anim.SetViewWidth(320)
	if anim.ViewWidth() != 320 {
		t.Errorf("Expected width 320, got %v", anim.ViewWidth())
	}
}

func TestAnimation_SetClearRadius(t *testing.T) {
	anim := newTestAnimation(&fakeClock{})
	anim.SetClearRadius(-5)
	if r := anim.Ring(); r.Clear != 0 || r.FarRadius() != 1000 {
		t.Errorf("Expected negative radius to be ignored, got %+v", r)
	}
	anim.SetClearRadius(2600)
	if r := anim.Ring(); r.Width != 1000 || r.FarRadius() != 2600 {
		t.Errorf("Expected far radius 2600 with width 1000, got %+v", r)
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseIdle:       "idle",
		PhaseDispersing: "dispersing",
		PhaseReforming:  "reforming",
		Phase(42):       "unknown",
	} {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
