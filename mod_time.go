package headache

import (
	"time"
)

// Time is the simulation clock in seconds. Now is the time of the current
// tick and Dt the step that led to it.
type Time struct {
	Now  float32
	Dt   float32
	Tick uint64

	fixedDt float32
	wall    time.Time
}

// TimeModule advances Time at the start of every tick. A positive FixedDt
// gives a deterministic clock; otherwise the wall clock drives it.
type TimeModule struct {
	FixedDt float32
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		fixedDt: mod.FixedDt,
		wall:    time.Now(),
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(t *Time) {
	if t.fixedDt > 0 {
		t.Dt = t.fixedDt
	} else {
		now := time.Now()
		t.Dt = float32(now.Sub(t.wall).Seconds())
		t.wall = now
	}
	t.Now += t.Dt
	t.Tick++
}
