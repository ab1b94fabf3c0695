package headache

import (
	"math/rand/v2"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/pv112/headache/physics"
)

// Scene is the initial set of bodies of a simulation.
type Scene struct {
	ID     uuid.UUID `yaml:"-"`
	Name   string    `yaml:"name"`
	Bodies []BodyDef `yaml:"bodies"`
}

// BodyDef describes one body. A box takes its extent from HalfWidths, or from
// Mesh scaled by Scale when a mesh is given. A nil Motion makes the body
// immovable.
type BodyDef struct {
	Kind       string            `yaml:"kind"`
	Center     mgl32.Vec3        `yaml:"center"`
	Radius     float32           `yaml:"radius,omitempty"`
	HalfWidths mgl32.Vec3        `yaml:"half_widths,omitempty"`
	Mesh       []mgl32.Vec3      `yaml:"mesh,omitempty"`
	Scale      mgl32.Vec3        `yaml:"scale,omitempty"`
	Motion     *MotionDef        `yaml:"motion,omitempty"`
	TTL        float32           `yaml:"ttl,omitempty"`
	Target     bool              `yaml:"target,omitempty"`
	FallTTL    float32           `yaml:"fall_ttl,omitempty"`
	MaxScale   float32           `yaml:"max_scale,omitempty"`
	Material   *physics.Material `yaml:"material,omitempty"`
}

type MotionDef struct {
	Direction mgl32.Vec3 `yaml:"direction"`
	Speed     float32    `yaml:"speed"`
	// Restitution defaults to 1.
	Restitution *float32 `yaml:"restitution,omitempty"`
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return scene, nil
}

func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}
	for i, def := range scene.Bodies {
		if err := def.Validate(); err != nil {
			return nil, errors.Wrapf(err, "body %d", i)
		}
	}
	scene.ID = uuid.New()
	return &scene, nil
}

func (d BodyDef) Validate() error {
	switch d.Kind {
	case "sphere":
		if d.Radius <= 0 {
			return errors.Errorf("sphere radius must be positive, got %v", d.Radius)
		}
	case "box":
		if len(d.Mesh) > 0 {
			if !positive(d.Scale) {
				return errors.Errorf("mesh box scale must be positive, got %v", d.Scale)
			}
		} else if !positive(d.HalfWidths) {
			return errors.Errorf("box half_widths must be positive, got %v", d.HalfWidths)
		}
	default:
		return errors.Errorf("unknown body kind %q", d.Kind)
	}
	if d.TTL < 0 {
		return errors.Errorf("ttl must not be negative, got %v", d.TTL)
	}
	if d.FallTTL < 0 {
		return errors.Errorf("fall_ttl must not be negative, got %v", d.FallTTL)
	}
	if d.Motion != nil && d.Motion.Restitution != nil {
		if e := *d.Motion.Restitution; e < 0 || e > 1 {
			return errors.Errorf("restitution must be in [0, 1], got %v", e)
		}
	}
	return nil
}

func positive(v mgl32.Vec3) bool {
	return v.X() > 0 && v.Y() > 0 && v.Z() > 0
}

// Body builds the body described by d. Expiration is measured from now.
func (d BodyDef) Body(targetStages int, events *Events, now float32) *physics.Body {
	var shape physics.Shape
	switch {
	case d.Kind == "sphere":
		shape = physics.NewSphere(d.Center, d.Radius)
	case len(d.Mesh) > 0:
		shape = physics.NewBoxFromMesh(d.Mesh, d.Center, d.Scale)
	default:
		shape = physics.NewBox(d.Center, d.HalfWidths)
	}

	motion := physics.Static()
	if d.Motion != nil {
		e := float32(1)
		if d.Motion.Restitution != nil {
			e = *d.Motion.Restitution
		}
		motion = physics.NewMotionWithRestitution(d.Motion.Direction, d.Motion.Speed, e)
	}

	var opts []physics.BodyOption
	if d.Material != nil {
		opts = append(opts, physics.WithMaterial(*d.Material))
	}
	if d.TTL > 0 {
		opts = append(opts, physics.WithExpiration(now+d.TTL))
	}
	if d.MaxScale > 0 {
		opts = append(opts, physics.WithMaxScale(d.MaxScale))
	}
	if d.Target {
		opts = append(opts, physics.WithHitHandler(NewTarget(targetStages, events).ExpireAfterDeath(d.FallTTL)))
	}
	return physics.NewBody(shape, motion, opts...)
}

// Spawn queues every body of the scene in file order. Targets report to the
// app's Events queue, which is created here if no module has added it yet.
func (s *Scene) Spawn(cmd *Commands, targetStages int, now float32) []physics.ID {
	events := ensureEvents(cmd.app)
	return lo.Map(s.Bodies, func(d BodyDef, _ int) physics.ID {
		return cmd.Spawn(d.Body(targetStages, events, now))
	})
}

// Bounds of the default arena as min/max per axis.
var Bounds = [3][2]float32{
	{-15, 15},
	{0, 7},
	{-15, 15},
}

// DefaultScene builds the arena of the game: walls around Bounds, a table
// with four balls, two rows of bouncing crates, two bookcases and twenty
// targets. Crate directions come from cfg.Sim.Seed.
func DefaultScene(cfg Config) *Scene {
	rng := rand.New(rand.NewPCG(cfg.Sim.Seed, cfg.Sim.Seed))
	scene := &Scene{ID: uuid.New(), Name: "default"}
	add := func(d BodyDef) { scene.Bodies = append(scene.Bodies, d) }

	const thickness = 0.4
	for dir := 0; dir < 2; dir++ {
		for i := 0; i < 3; i++ {
			var center mgl32.Vec3
			widths := mgl32.Vec3{20, 20, 20}
			if dir == 0 {
				center[i] = Bounds[i][0] - thickness
			} else {
				center[i] = Bounds[i][1] + thickness
			}
			widths[i] = thickness
			add(BodyDef{Kind: "box", Center: center, HalfWidths: widths})
		}
	}

	add(BodyDef{
		Kind:   "box",
		Center: mgl32.Vec3{0, 0, 0},
		Mesh:   tableMesh,
		Scale:  mgl32.Vec3{4.5, 4, 4.5},
	})

	corners := [4][2]float32{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	for i, p := range corners {
		add(BodyDef{
			Kind:   "sphere",
			Center: mgl32.Vec3{p[0], 2 + float32(i), p[1]},
			Radius: 0.25,
			Motion: &MotionDef{Direction: physics.Up, Speed: 3},
		})
	}

	for _, axis := range []int{0, 2} {
		const spread = 3
		count := int((Bounds[axis][1] - Bounds[axis][0]) / spread)
		dir := physics.Up
		for i := 0; i < count; i++ {
			position := mgl32.Vec3{0, float32(i)/2 + 2, 0}
			position[axis] = Bounds[0][0] + float32(i)*spread
			dir[axis] = 1
			if rng.IntN(2) == 1 {
				dir[axis] = -1
			}
			add(BodyDef{
				Kind:       "box",
				Center:     position,
				HalfWidths: mgl32.Vec3{0.5, 0.75, 0.4},
				Motion:     &MotionDef{Direction: dir, Speed: 3},
			})
		}
	}

	for _, x := range []float32{-11, 11} {
		add(BodyDef{
			Kind:   "box",
			Center: mgl32.Vec3{x, 1.5, -11},
			Mesh:   bookcaseMesh,
			Scale:  mgl32.Vec3{3, 3, 3},
		})
	}

	for i := 0; i < 5; i++ {
		s := 2.5 * float32(i+1)
		size := 1 / float32(i+1)
		for _, p := range corners {
			add(BodyDef{
				Kind:       "box",
				Center:     mgl32.Vec3{s * p[0], float32(i) + 2, s * p[1]},
				HalfWidths: mgl32.Vec3{size, size, size},
				Target:     true,
				MaxScale:   1,
			})
		}
	}
	return scene
}

// Bounding corners of the table and bookcase meshes.
var (
	tableMesh    = []mgl32.Vec3{{-0.5, 0, -0.5}, {0.5, 0.25, 0.5}}
	bookcaseMesh = []mgl32.Vec3{{-0.5, -0.5, -0.2}, {0.5, 0.5, 0.2}}
)

// SceneModule spawns a scene when the app is built.
type SceneModule struct {
	Scene        *Scene
	TargetStages int
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	ids := m.Scene.Spawn(cmd, m.TargetStages, 0)
	cmd.Logger().Infof("scene %s (%s): %d bodies", m.Scene.Name, m.Scene.ID, len(ids))
}
