package headache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7, cfg.Target.Stages)
	assert.Equal(t, ProjectileRange{MinRadius: 0.1, MaxRadius: 0.3, MinSpeed: 5, MaxSpeed: 17}, cfg.Projectile.Small)
	assert.Equal(t, ProjectileRange{MinRadius: 0.3, MaxRadius: 0.5, MinSpeed: 3, MaxSpeed: 9}, cfg.Projectile.Large)
	assert.Equal(t, float32(0.6), cfg.Projectile.SpawnOffset)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Log.Prefix)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, float32(0.02), cfg.Sim.FixedDt)
	assert.Equal(t, uint64(9), cfg.Sim.Seed)
	assert.Equal(t, uint64(600), cfg.Sim.Ticks, "missing keys keep defaults")
	assert.Equal(t, float32(4), cfg.Projectile.TTL)
	assert.Equal(t, float32(20), cfg.Projectile.Small.MaxSpeed)
	assert.Equal(t, float32(5), cfg.Projectile.Small.MinSpeed)
	assert.Equal(t, mgl32.Vec3{0, 3, 10}, cfg.Projectile.Origin)
	assert.Equal(t, 7, cfg.Target.Stages)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  stages: 1\n"), 0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target.stages")
	assert.Contains(t, err.Error(), path)
}

func TestParseConfig_Validation(t *testing.T) {
	cases := map[string]string{
		"syntax":       "sim: [",
		"negative dt":  "sim:\n  fixed_dt: -1\n",
		"zero ttl":     "projectile:\n  ttl: 0\n",
		"radius range": "projectile:\n  large:\n    min_radius: 0.6\n",
		"speed range":  "projectile:\n  small:\n    min_speed: 30\n",
		"aim":          "projectile:\n  origin: [0, 2.5, 0]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}
