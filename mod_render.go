package headache

import (
	"github.com/pv112/headache/physics"
)

// RenderItem is everything a renderer needs to draw one body.
type RenderItem struct {
	physics.Transform
	Material physics.Material
	// Stage selects the damage texture of a target; zero for other bodies.
	Stage int
}

// Frame is the result of the last integration step.
type Frame struct {
	Now   float32
	Items []RenderItem
}

// Renderer draws a frame item by item. Implementations live outside the
// simulation.
type Renderer interface {
	Render(item RenderItem, now float32)
}

type renderTarget struct {
	renderer Renderer
}

// RenderModule hands every integrated body to Renderer in the Render stage.
// It needs PhysicsModule for the Frame resource.
type RenderModule struct {
	Renderer Renderer
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	if m.Renderer == nil {
		panic("RenderModule needs a Renderer")
	}
	cmd.AddResources(&renderTarget{renderer: m.Renderer})
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func renderSystem(frame *Frame, target *renderTarget) {
	for _, item := range frame.Items {
		target.renderer.Render(item, frame.Now)
	}
}
