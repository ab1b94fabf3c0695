package physics

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Arena holds the live bodies of a simulation in insertion order and hands
// out their IDs.
type Arena struct {
	bodies []*Body
	index  map[ID]int
	next   ID
}

func NewArena() *Arena {
	return &Arena{
		index: make(map[ID]int),
	}
}

// Reserve hands out the next ID without inserting anything, so callers can
// refer to a body before it joins the arena.
func (a *Arena) Reserve() ID {
	id := a.next
	a.next++
	return id
}

func (a *Arena) Insert(id ID, b *Body) {
	if b == nil {
		panic("physics: nil body")
	}
	if _, ok := a.index[id]; ok {
		panic(fmt.Sprintf("physics: body %d already in arena", id))
	}
	if id >= a.next {
		a.next = id + 1
	}
	b.id = id
	a.index[id] = len(a.bodies)
	a.bodies = append(a.bodies, b)
}

func (a *Arena) Add(b *Body) ID {
	id := a.Reserve()
	a.Insert(id, b)
	return id
}

// Remove drops a body, keeping the order of the others.
func (a *Arena) Remove(id ID) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	a.bodies = slices.Delete(a.bodies, i, i+1)
	delete(a.index, id)
	for j := i; j < len(a.bodies); j++ {
		a.index[a.bodies[j].id] = j
	}
	return true
}

func (a *Arena) Get(id ID) (*Body, bool) {
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return a.bodies[i], true
}

func (a *Arena) Len() int {
	return len(a.bodies)
}

// Bodies returns a snapshot of the arena in insertion order.
func (a *Arena) Bodies() []*Body {
	return slices.Clone(a.bodies)
}

// Live returns the bodies that have not expired at now.
func (a *Arena) Live(now float32) []*Body {
	return lo.Filter(a.bodies, func(b *Body, _ int) bool {
		return !b.IsExpired(now)
	})
}

func (a *Arena) Expired(now float32) []ID {
	return lo.FilterMap(a.bodies, func(b *Body, _ int) (ID, bool) {
		return b.id, b.IsExpired(now)
	})
}

// Resolve runs one collision pass: every unordered pair once, outer index
// before inner, over a snapshot taken at the start. A pair visited later sees
// the velocities left by earlier bounces in the same pass. It returns the
// number of contacts that exchanged an impulse.
func (a *Arena) Resolve(now float32) int {
	bodies := a.Bodies()
	contacts := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			x, y := bodies[i], bodies[j]
			if !x.motion.Active && !y.motion.Active {
				continue
			}
			if x.Collides(y) && Bounce(x, y, now) {
				contacts++
			}
		}
	}
	return contacts
}

// Integrate advances every body by dt and returns their transforms in arena
// order.
func (a *Arena) Integrate(dt float32) []Transform {
	out := make([]Transform, 0, len(a.bodies))
	for _, b := range a.bodies {
		b.UpdateGeometry(dt)
		out = append(out, b.Transform())
	}
	return out
}
