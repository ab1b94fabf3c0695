package headache

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pv112/headache/physics"
)

type EventKind int

const (
	EventHit EventKind = iota
	EventDeath
	EventExpired
	EventFired
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventDeath:
		return "death"
	case EventExpired:
		return "expired"
	case EventFired:
		return "fired"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a gameplay notification for outside consumers such as audio.
type Event struct {
	Kind  EventKind
	Body  physics.ID
	Other physics.ID
	Time  float32
}

// Events collects gameplay events until the driver drains them.
type Events struct {
	list []Event
}

func (e *Events) emit(ev Event) {
	if e == nil {
		return
	}
	e.list = append(e.list, ev)
}

func (e *Events) Len() int {
	return len(e.list)
}

// ensureEvents returns the app's event queue, registering an empty one on
// first use. Modules that emit events may be installed in any order.
func ensureEvents(app *App) *Events {
	if events, ok := Resource[Events](app); ok {
		return events
	}
	events := &Events{}
	app.addResources(events)
	return events
}

// Drain returns the pending events in emission order and clears the list.
func (e *Events) Drain() []Event {
	out := e.list
	e.list = nil
	return out
}

// Target is the hit handler of a destructible block. Every fresh hit damages
// it by one stage; the last stage knocks it loose and it starts falling.
type Target struct {
	stages int
	hits   int
	events *Events
	fall   float32
}

func NewTarget(stages int, events *Events) *Target {
	return &Target{stages: stages, events: events}
}

// ExpireAfterDeath makes the knocked-loose target expire d seconds after the
// final hit. Zero keeps it forever.
func (t *Target) ExpireAfterDeath(d float32) *Target {
	t.fall = d
	return t
}

// OnHit ignores a repeated hit from the body that touched the target last.
func (t *Target) OnHit(self *physics.Body, other physics.ID, now float32) {
	if last, ok := self.LastContact(); ok && last == other {
		return
	}
	t.hits++

	switch {
	case t.hits < t.stages-1:
		t.events.emit(Event{Kind: EventHit, Body: self.ID(), Other: other, Time: now})
	case t.hits == t.stages-1:
		self.Activate()
		if t.fall > 0 {
			self.SetExpiration(now + t.fall)
		}
		t.events.emit(Event{Kind: EventDeath, Body: self.ID(), Other: other, Time: now})
	}
}

func (t *Target) Hits() int {
	return t.hits
}

// Stage is the damage texture index, capped at the last one.
func (t *Target) Stage() int {
	return min(t.hits, t.stages-1)
}

func (t *Target) Dead() bool {
	return t.hits >= t.stages-1
}

// Projectile counts the bounces of a fired ball.
type Projectile struct {
	Bounces int
}

func (p *Projectile) OnHit(self *physics.Body, other physics.ID, now float32) {
	p.Bounces++
}

func damageStage(b *physics.Body) int {
	if t, ok := b.Handler().(*Target); ok {
		return t.Stage()
	}
	return 0
}

type ProjectileSize int

const (
	SmallProjectile ProjectileSize = iota
	LargeProjectile
)

// Launcher fires projectiles with a random radius and speed from the
// configured ranges. The same seed gives the same sequence of shots.
type Launcher struct {
	cfg    ProjectileConfig
	rng    *rand.Rand
	events *Events
}

func NewLauncher(cfg ProjectileConfig, seed uint64, events *Events) *Launcher {
	return &Launcher{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		events: events,
	}
}

// Fire spawns a ball just outside origin along direction so that it does not
// start inside the shooter. It returns the id reserved for the ball.
func (l *Launcher) Fire(cmd *Commands, origin, direction mgl32.Vec3, size ProjectileSize, now float32) physics.ID {
	r := l.cfg.Small
	if size == LargeProjectile {
		r = l.cfg.Large
	}
	radius := l.uniform(r.MinRadius, r.MaxRadius)
	speed := l.uniform(r.MinSpeed, r.MaxSpeed)

	dir := direction
	if dir.Len() == 0 {
		dir = l.cfg.Aim.Sub(l.cfg.Origin)
	}
	dir = dir.Normalize()
	center := origin.Add(dir.Mul(radius + l.cfg.SpawnOffset))

	body := physics.NewBody(
		physics.NewSphere(center, radius),
		physics.NewMotion(dir, speed),
		physics.WithHitHandler(&Projectile{}),
		physics.WithExpiration(now+l.cfg.TTL),
	)
	id := cmd.Spawn(body)
	l.events.emit(Event{Kind: EventFired, Body: id, Time: now})
	cmd.Logger().Debugf("fired body %d r=%.2f v=%.2f", id, radius, speed)
	return id
}

func (l *Launcher) uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*l.rng.Float32()
}

// AutoFire shoots Remaining projectiles from the configured origin, one every
// Every ticks, alternating small and large.
type AutoFire struct {
	Remaining int
	Every     uint64
	fired     int
}

// GameplayModule installs the launcher and auto-fire, and the event queue
// if no other module has.
type GameplayModule struct {
	Config   Config
	AutoFire int
}

func (m GameplayModule) Install(app *App, cmd *Commands) {
	events := ensureEvents(app)
	every := m.Config.Projectile.FireEvery
	if every == 0 {
		every = 1
	}
	cmd.AddResources(
		NewLauncher(m.Config.Projectile, m.Config.Sim.Seed, events),
		&AutoFire{Remaining: m.AutoFire, Every: every},
	)
	app.UseSystem(
		System(autoFireSystem).
			InStage(PreUpdate),
	)
}

func autoFireSystem(t *Time, auto *AutoFire, launcher *Launcher, cmd *Commands) {
	if auto.Remaining <= 0 || (t.Tick-1)%auto.Every != 0 {
		return
	}
	size := SmallProjectile
	if auto.fired%2 == 1 {
		size = LargeProjectile
	}
	cfg := launcher.cfg
	launcher.Fire(cmd, cfg.Origin, cfg.Aim.Sub(cfg.Origin), size, t.Now)
	auto.Remaining--
	auto.fired++
}
