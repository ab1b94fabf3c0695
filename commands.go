package headache

import (
	"github.com/pv112/headache/physics"
)

// Commands is the handle systems use to change the app. Spawns and despawns
// are deferred until the end of the current stage.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Spawn queues a body for insertion. The returned id is valid immediately but
// the body only takes part in the simulation after the next flush.
func (cmd *Commands) Spawn(body *physics.Body) physics.ID {
	id := cmd.app.arena.Reserve()
	cmd.app.pendingSpawns = append(cmd.app.pendingSpawns, pendingSpawn{
		id:   id,
		body: body,
	})
	return id
}

func (cmd *Commands) Despawn(id physics.ID) {
	cmd.app.pendingDespawns = append(cmd.app.pendingDespawns, id)
}

// Bodies returns the live bodies in id order.
func (cmd *Commands) Bodies() []*physics.Body {
	return cmd.app.arena.Bodies()
}

func (cmd *Commands) Body(id physics.ID) (*physics.Body, bool) {
	return cmd.app.arena.Get(id)
}

// Quit stops App.Run after the current tick.
func (cmd *Commands) Quit() {
	cmd.app.quit = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

func (cmd *Commands) arena() *physics.Arena {
	return cmd.app.arena
}
