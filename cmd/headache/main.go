package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/pv112/headache"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	scenePath := flag.String("scene", "", "YAML scene file, the built-in arena when empty")
	ticks := flag.Uint64("ticks", 0, "number of ticks to simulate, overrides the config (0 keeps the config value)")
	tracePath := flag.String("trace", "", "write a msgpack trace of every tick to this file")
	debug := flag.Bool("debug", false, "enable debug logging")
	fire := flag.Int("fire", 0, "number of projectiles to auto-fire")
	flag.Parse()

	cfg := headache.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = headache.LoadConfig(*configPath)
		if err != nil {
			headache.NewDefaultLogger("headache", false).Errorf("%v", err)
			os.Exit(1)
		}
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if *tracePath != "" {
		cfg.Trace.Path = *tracePath
	}
	if *ticks > 0 {
		cfg.Sim.Ticks = *ticks
	}
	cfg.Log.Debug = cfg.Log.Debug || *debug

	log := headache.NewDefaultLogger(cfg.Log.Prefix, cfg.Log.Debug)
	if err := run(cfg, *fire, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg headache.Config, fire int, log headache.Logger) error {
	scene := headache.DefaultScene(cfg)
	if cfg.Scene.Path != "" {
		var err error
		if scene, err = headache.LoadScene(cfg.Scene.Path); err != nil {
			return err
		}
	}

	modules := []headache.Module{
		headache.LoggingModule{Logger: log},
		headache.TimeModule{FixedDt: cfg.Sim.FixedDt},
		headache.GameplayModule{Config: cfg, AutoFire: fire},
		headache.LifecycleModule{},
		headache.PhysicsModule{},
		headache.SceneModule{Scene: scene, TargetStages: cfg.Target.Stages},
	}
	if cfg.Trace.Path != "" {
		f, err := os.Create(cfg.Trace.Path)
		if err != nil {
			return errors.Wrap(err, "create trace")
		}
		defer f.Close()
		modules = append(modules, headache.TraceModule{Writer: f})
	}

	app := headache.NewAppBuilder().UseModule(modules...).Build()
	events, _ := headache.Resource[headache.Events](app)
	world, _ := headache.Resource[headache.PhysicsWorld](app)

	deaths := 0
	app.RunFunc(cfg.Sim.Ticks, func() {
		for _, ev := range events.Drain() {
			if ev.Kind == headache.EventDeath {
				deaths++
			}
			log.Debugf("%.3f %s body=%d other=%d", ev.Time, ev.Kind, ev.Body, ev.Other)
		}
	})

	log.Infof("%d ticks, %d contacts, %d bodies left, %d targets down",
		app.Ticks(), world.TotalContacts, len(app.Commands().Bodies()), deaths)
	return nil
}
