package headache

import (
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pv112/headache/physics"
)

func TestLoadScene(t *testing.T) {
	scene, err := LoadScene(filepath.Join("testdata", "scene.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "pit", scene.Name)
	assert.NotEqual(t, uuid.Nil, scene.ID)
	require.Len(t, scene.Bodies, 4)

	app := NewAppBuilder().
		UseModule(GameplayModule{Config: DefaultConfig()}, SceneModule{Scene: scene, TargetStages: 4}).
		Build()
	bodies := app.Commands().Bodies()
	require.Len(t, bodies, 4)

	floor, table, ball, target := bodies[0], bodies[1], bodies[2], bodies[3]
	assert.False(t, floor.IsActive())
	assert.Equal(t, mgl32.Vec3{10, 0.5, 10}, floor.AABB().HalfWidths)

	assert.Equal(t, mgl32.Vec3{2, 1, 2}, table.AABB().HalfWidths)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, table.Center())

	assert.True(t, ball.IsActive())
	assert.Equal(t, float32(0.5), ball.Motion().Restitution)
	assert.InDelta(t, -2, ball.Velocity().Y(), 1e-6)
	assert.Equal(t, float32(3), ball.ExpiresAt())

	require.IsType(t, &Target{}, target.Handler())
	assert.Equal(t, float32(2), target.Handler().(*Target).fall)
	assert.Equal(t, float32(1), target.MaxScale())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, target.Material().Diffuse)
	assert.Equal(t, physics.DefaultMaterial(), floor.Material())
}

func TestParseScene_Errors(t *testing.T) {
	cases := map[string]string{
		"kind":        "bodies:\n  - kind: cone\n",
		"radius":      "bodies:\n  - kind: sphere\n    radius: 0\n",
		"half widths": "bodies:\n  - kind: box\n    half_widths: [1, 0, 1]\n",
		"mesh scale":  "bodies:\n  - kind: box\n    mesh: [[0, 0, 0], [1, 1, 1]]\n",
		"ttl":         "bodies:\n  - kind: sphere\n    radius: 1\n    ttl: -1\n",
		"fall ttl":    "bodies:\n  - kind: box\n    half_widths: [1, 1, 1]\n    fall_ttl: -1\n",
		"restitution": "bodies:\n  - kind: sphere\n    radius: 1\n    motion:\n      speed: 1\n      restitution: 2\n",
		"yaml":        "bodies: {",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestDefaultScene(t *testing.T) {
	cfg := DefaultConfig()
	scene := DefaultScene(cfg)

	// 6 walls, table, 4 balls, 2 rows of 10 crates, 2 bookcases, 20 targets
	require.Len(t, scene.Bodies, 53)
	assert.Len(t, lo.Filter(scene.Bodies, func(d BodyDef, _ int) bool { return d.Target }), 20)
	assert.Len(t, lo.Filter(scene.Bodies, func(d BodyDef, _ int) bool { return d.Motion != nil }), 24)

	floor := scene.Bodies[1]
	assert.Equal(t, mgl32.Vec3{0, -0.4, 0}, floor.Center)
	assert.Equal(t, mgl32.Vec3{20, 0.4, 20}, floor.HalfWidths)

	again := DefaultScene(cfg)
	assert.Equal(t, scene.Bodies, again.Bodies, "same seed, same crates")
	assert.NotEqual(t, scene.ID, again.ID)
}

func TestDefaultScene_Runs(t *testing.T) {
	cfg := DefaultConfig()
	app := NewAppBuilder().
		UseModule(
			TimeModule{FixedDt: cfg.Sim.FixedDt},
			GameplayModule{Config: cfg, AutoFire: 4},
			LifecycleModule{},
			PhysicsModule{},
			SceneModule{Scene: DefaultScene(cfg), TargetStages: cfg.Target.Stages},
		).
		Build()

	app.Run(300)

	world, _ := Resource[PhysicsWorld](app)
	assert.Positive(t, world.TotalContacts)
	bodies := app.Commands().Bodies()
	assert.Len(t, bodies, 57)
	for _, b := range bodies {
		c := b.Center()
		for i := 0; i < 3; i++ {
			assert.False(t, math32.IsNaN(c[i]) || math32.IsInf(c[i], 0), "body %d at %v", b.ID(), c)
		}
	}
}

func TestSceneModule_TargetsReportEventsInAnyModuleOrder(t *testing.T) {
	scene, err := ParseScene([]byte("bodies:\n  - kind: box\n    center: [0, 2, 0]\n    half_widths: [0.5, 0.5, 0.5]\n    target: true\n"))
	require.NoError(t, err)

	app := NewAppBuilder().
		UseModule(SceneModule{Scene: scene, TargetStages: 2}, GameplayModule{Config: DefaultConfig()}).
		Build()
	events, ok := Resource[Events](app)
	require.True(t, ok)

	bodies := app.Commands().Bodies()
	require.Len(t, bodies, 1)
	target, ok := bodies[0].Handler().(*Target)
	require.True(t, ok)
	assert.Same(t, events, target.events)

	target.OnHit(bodies[0], 99, 1)
	evs := events.Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, EventDeath, evs[0].Kind)
	assert.True(t, bodies[0].IsActive())
}
