package headache

import (
	"github.com/samber/lo"

	"github.com/pv112/headache/physics"
)

// PhysicsWorld holds the contact counters of the collision pass.
type PhysicsWorld struct {
	Gravity       float32
	Contacts      int
	TotalContacts uint64
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity: physics.GravityAcceleration,
	}
}

// PhysicsModule resolves contacts in Update and integrates motion in
// PostUpdate. The integration results are published in the Frame resource.
type PhysicsModule struct{}

func (m PhysicsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewPhysicsWorld(), &Frame{})

	app.UseSystem(
		System(CollisionSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(IntegrationSystem).
			InStage(PostUpdate),
	)
}

func CollisionSystem(t *Time, world *PhysicsWorld, cmd *Commands) {
	world.Contacts = cmd.arena().Resolve(t.Now)
	world.TotalContacts += uint64(world.Contacts)
	if world.Contacts > 0 {
		cmd.Logger().Debugf("tick %d: %d contacts", t.Tick, world.Contacts)
	}
}

func IntegrationSystem(t *Time, frame *Frame, cmd *Commands) {
	bodies := cmd.arena().Bodies()
	transforms := cmd.arena().Integrate(t.Dt)

	frame.Now = t.Now
	frame.Items = lo.Map(transforms, func(tr physics.Transform, i int) RenderItem {
		return RenderItem{
			Transform: tr,
			Material:  bodies[i].Material(),
			Stage:     damageStage(bodies[i]),
		}
	})
}
