package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewModule(t *testing.T) {
	m := NewModule(Config{Port: 2022}, &mockLogger{})

	assert.Equal(t, "api", m.Name())
	assert.Equal(t, []string{"filemeta"}, m.Dependencies())
	assert.Equal(t, "*", m.cfg.AllowOrigins)
}

func TestModule_StartWithoutDependency(t *testing.T) {
	m := NewModule(Config{Port: 2022}, &mockLogger{})

	assert.Error(t, m.Start(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
	assert.NoError(t, m.Stop(context.Background()))
}
