package headache

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pv112/headache/physics"
)

func TestTraceModule_RecordsEveryTick(t *testing.T) {
	var buf bytes.Buffer
	ball := physics.NewBody(physics.NewSphere(mgl32.Vec3{0, 0.6, 0}, 0.5), physics.NewMotion(physics.Down, 1))

	app := NewAppBuilder().
		UseModule(
			TimeModule{FixedDt: 0.1},
			PhysicsModule{},
			TraceModule{Writer: &buf},
			bodiesModule{bodies: []*physics.Body{newFloor(), ball}},
		).
		Build()
	app.Run(3)

	records, err := ReadTrace(&buf)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, rec := range records {
		assert.Equal(t, uint64(i+1), rec.Tick)
		require.Len(t, rec.Bodies, 2)
		assert.Equal(t, "box", rec.Bodies[0].Kind)
		assert.False(t, rec.Bodies[0].Active)
	}
	assert.Equal(t, []int{0, 1, 0}, []int{records[0].Contacts, records[1].Contacts, records[2].Contacts})

	last := records[2].Bodies[1]
	assert.Equal(t, uint32(ball.ID()), last.ID)
	assert.Equal(t, "sphere", last.Kind)
	assert.Equal(t, [3]float32(ball.Center()), last.Center)
	assert.Equal(t, [3]float32(ball.Velocity()), last.Velocity)
	assert.InDelta(t, 0.3, records[2].Now, 1e-6)
}

func TestReadTrace(t *testing.T) {
	records, err := ReadTrace(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = ReadTrace(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestTraceModule_NeedsWriter(t *testing.T) {
	assert.Panics(t, func() {
		NewAppBuilder().UseModule(TimeModule{}, PhysicsModule{}, TraceModule{}).Build()
	})
}
