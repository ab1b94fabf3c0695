package headache

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Sim        SimConfig        `yaml:"sim"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Target     TargetConfig     `yaml:"target"`
	Scene      SceneConfig      `yaml:"scene"`
	Trace      TraceConfig      `yaml:"trace"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

type SimConfig struct {
	// FixedDt is the step in seconds; zero runs on the wall clock.
	FixedDt float32 `yaml:"fixed_dt"`
	Ticks   uint64  `yaml:"ticks"`
	Seed    uint64  `yaml:"seed"`
}

type ProjectileRange struct {
	MinRadius float32 `yaml:"min_radius"`
	MaxRadius float32 `yaml:"max_radius"`
	MinSpeed  float32 `yaml:"min_speed"`
	MaxSpeed  float32 `yaml:"max_speed"`
}

type ProjectileConfig struct {
	// TTL is the lifetime of a fired projectile in seconds.
	TTL         float32         `yaml:"ttl"`
	SpawnOffset float32         `yaml:"spawn_offset"`
	Small       ProjectileRange `yaml:"small"`
	Large       ProjectileRange `yaml:"large"`
	// Origin and Aim place the launcher used by auto-fire.
	Origin    mgl32.Vec3 `yaml:"origin"`
	Aim       mgl32.Vec3 `yaml:"aim"`
	FireEvery uint64     `yaml:"fire_every"`
}

type TargetConfig struct {
	Stages int `yaml:"stages"`
}

type SceneConfig struct {
	Path string `yaml:"path"`
}

type TraceConfig struct {
	Path string `yaml:"path"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Prefix: "headache"},
		Sim: SimConfig{
			FixedDt: 1.0 / 60,
			Ticks:   600,
			Seed:    1,
		},
		Projectile: ProjectileConfig{
			TTL:         10,
			SpawnOffset: 0.6,
			Small:       ProjectileRange{MinRadius: 0.1, MaxRadius: 0.3, MinSpeed: 5, MaxSpeed: 17},
			Large:       ProjectileRange{MinRadius: 0.3, MaxRadius: 0.5, MinSpeed: 3, MaxSpeed: 9},
			Origin:      mgl32.Vec3{11, 2, 2.5},
			Aim:         mgl32.Vec3{0, 2.5, 0},
			FireEvery:   30,
		},
		Target: TargetConfig{Stages: 7},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Sim.FixedDt < 0 {
		return errors.Errorf("sim.fixed_dt must not be negative, got %v", c.Sim.FixedDt)
	}
	if c.Projectile.TTL <= 0 {
		return errors.Errorf("projectile.ttl must be positive, got %v", c.Projectile.TTL)
	}
	if c.Projectile.SpawnOffset < 0 {
		return errors.Errorf("projectile.spawn_offset must not be negative, got %v", c.Projectile.SpawnOffset)
	}
	if err := c.Projectile.Small.validate(); err != nil {
		return errors.Wrap(err, "projectile.small")
	}
	if err := c.Projectile.Large.validate(); err != nil {
		return errors.Wrap(err, "projectile.large")
	}
	if c.Projectile.Aim.Sub(c.Projectile.Origin).Len() == 0 {
		return errors.New("projectile.aim must differ from projectile.origin")
	}
	if c.Target.Stages < 2 {
		return errors.Errorf("target.stages must be at least 2, got %d", c.Target.Stages)
	}
	return nil
}

func (r ProjectileRange) validate() error {
	if r.MinRadius <= 0 || r.MaxRadius < r.MinRadius {
		return errors.Errorf("bad radius range [%v, %v]", r.MinRadius, r.MaxRadius)
	}
	if r.MinSpeed < 0 || r.MaxSpeed < r.MinSpeed {
		return errors.Errorf("bad speed range [%v, %v]", r.MinSpeed, r.MaxSpeed)
	}
	return nil
}
