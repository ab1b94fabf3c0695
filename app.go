package headache

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/samber/lo"

	"github.com/pv112/headache/physics"
)

type systemFn any

// App owns the body arena, the registered resources and the per-stage system
// lists. It is driven from a single goroutine.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	arena     *physics.Arena

	// Command Buffering
	pendingSpawns   []pendingSpawn
	pendingDespawns []physics.ID

	quit  bool
	ticks uint64
}

type pendingSpawn struct {
	id   physics.ID
	body *physics.Body
}

func newApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		arena:     physics.NewArena(),
	}
	for _, stage := range defaultStages() {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Ticks is the number of completed steps.
func (app *App) Ticks() uint64 {
	return app.ticks
}

// Step runs every stage once, flushing deferred commands after each stage.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
	app.ticks++
}

// Run steps the app until ticks steps have run or a system asks to quit. A
// zero ticks runs until quit. It returns the number of steps taken.
func (app *App) Run(ticks uint64) uint64 {
	return app.RunFunc(ticks, nil)
}

// RunFunc is Run with afterStep called once after every step, before the quit
// check.
func (app *App) RunFunc(ticks uint64, afterStep func()) uint64 {
	log := app.Logger()
	log.Infof("running with %d bodies", app.arena.Len())

	var n uint64
	for !app.quit && (ticks == 0 || n < ticks) {
		app.Step()
		n++
		if afterStep != nil {
			afterStep()
		}
	}

	log.Infof("stopped after %d ticks, %d bodies left", n, app.arena.Len())
	return n
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("%s is not a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the registered resource of type T.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			app.unresolved(systemValue, argType)
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.unresolved(systemValue, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) unresolved(system reflect.Value, dependency reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(system.Pointer()).Name(),
		fmt.Sprint(system.Type()),
		fmt.Sprint(dependency),
	)
	app.Logger().Errorf("%s", msg)
	panic(msg)
}

// FlushCommands applies the spawns and despawns queued since the last flush.
// Removals go first; a body despawned before it was ever inserted is dropped.
func (app *App) FlushCommands() {
	if len(app.pendingSpawns) == 0 && len(app.pendingDespawns) == 0 {
		return
	}
	log := app.Logger()

	for _, id := range app.pendingDespawns {
		if app.arena.Remove(id) {
			log.Debugf("removed body %d", id)
		}
	}

	spawns := lo.Reject(app.pendingSpawns, func(s pendingSpawn, _ int) bool {
		return lo.Contains(app.pendingDespawns, s.id)
	})
	for _, s := range spawns {
		app.arena.Insert(s.id, s.body)
		log.Debugf("spawned %s body %d at %v", s.body.Kind(), s.id, s.body.Center())
	}

	app.pendingDespawns = app.pendingDespawns[:0]
	app.pendingSpawns = app.pendingSpawns[:0]
}
