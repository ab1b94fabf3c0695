package headache

// LifecycleModule removes bodies whose expiration time has passed. Removal
// happens before the collision pass of the same tick.
type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(LifecycleSystem).
			InStage(PreUpdate),
	)
}

func LifecycleSystem(t *Time, cmd *Commands) {
	log := cmd.Logger()
	events, _ := Resource[Events](cmd.app)

	for _, id := range cmd.arena().Expired(t.Now) {
		log.Debugf("body %d expired at %.3f", id, t.Now)
		cmd.Despawn(id)
		if events != nil {
			events.emit(Event{Kind: EventExpired, Body: id, Time: t.Now})
		}
	}
}
