package headache

import (
	"io"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pv112/headache/physics"
)

// TraceRecord is the state of the simulation at the end of one tick.
type TraceRecord struct {
	Tick     uint64      `msgpack:"tick"`
	Now      float32     `msgpack:"now"`
	Contacts int         `msgpack:"contacts"`
	Bodies   []BodyState `msgpack:"bodies"`
}

type BodyState struct {
	ID       uint32     `msgpack:"id"`
	Kind     string     `msgpack:"kind"`
	Center   [3]float32 `msgpack:"center"`
	Velocity [3]float32 `msgpack:"velocity"`
	Active   bool       `msgpack:"active"`
}

type tracer struct {
	enc    *msgpack.Encoder
	failed bool
}

// TraceModule writes one msgpack record per tick to Writer.
type TraceModule struct {
	Writer io.Writer
}

func (m TraceModule) Install(app *App, cmd *Commands) {
	if m.Writer == nil {
		panic("TraceModule needs a Writer")
	}
	cmd.AddResources(&tracer{enc: msgpack.NewEncoder(m.Writer)})
	app.UseSystem(
		System(traceSystem).
			InStage(Finale),
	)
}

func traceSystem(t *Time, world *PhysicsWorld, tr *tracer, cmd *Commands) {
	if tr.failed {
		return
	}
	rec := TraceRecord{
		Tick:     t.Tick,
		Now:      t.Now,
		Contacts: world.Contacts,
		Bodies: lo.Map(cmd.Bodies(), func(b *physics.Body, _ int) BodyState {
			return BodyState{
				ID:       uint32(b.ID()),
				Kind:     b.Kind().String(),
				Center:   b.Center(),
				Velocity: b.Velocity(),
				Active:   b.IsActive(),
			}
		}),
	}
	if err := tr.enc.Encode(&rec); err != nil {
		tr.failed = true
		cmd.Logger().Errorf("trace stopped at tick %d: %v", t.Tick, err)
	}
}

// ReadTrace decodes every record of a trace stream.
func ReadTrace(r io.Reader) ([]TraceRecord, error) {
	dec := msgpack.NewDecoder(r)
	var out []TraceRecord
	for {
		var rec TraceRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, errors.Wrapf(err, "decode trace record %d", len(out))
		}
		out = append(out, rec)
	}
}
