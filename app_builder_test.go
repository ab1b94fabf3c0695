package headache

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/pv112/headache/physics"
)

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

type spawningModule struct{}

func (spawningModule) Install(app *App, cmd *Commands) {
	cmd.Spawn(physics.NewBody(physics.NewSphere(mgl32.Vec3{}, 1), physics.Static()))
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.Equal(t, defaultStages(), app.stages)
	assert.Equal(t, 0, app.arena.Len())
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	assert.Len(t, builder.modules, 1)
	assert.False(t, mockModule.installed, "modules install on Build")
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &MockModule{}
	module2 := &MockModule{}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)
	builder.Build()

	assert.Len(t, builder.modules, 2)
	assert.True(t, module1.installed)
	assert.True(t, module2.installed)
}

func TestAppBuilder_Build_FlushesSpawns(t *testing.T) {
	app := NewAppBuilder().UseModule(spawningModule{}).Build()

	assert.Equal(t, 1, app.arena.Len())
}
