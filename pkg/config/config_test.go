package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	type cfg struct {
		Port   int    `env:"TEST_LOADER_PORT" envDefault:"8080"`
		Driver string `env:"TEST_LOADER_DRIVER" envDefault:"postgres"`
	}

	var c cfg
	require.NoError(t, Load(&c))
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "postgres", c.Driver)
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("TEST_LOADER_PORT", "9090")
	t.Setenv("TEST_LOADER_LIST", "a,b,c")

	type cfg struct {
		Port int      `env:"TEST_LOADER_PORT" envDefault:"8080"`
		List []string `env:"TEST_LOADER_LIST" envSeparator:","`
	}

	var c cfg
	require.NoError(t, Load(&c))
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, []string{"a", "b", "c"}, c.List)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_LOADER_PORT", "not-a-number")

	type cfg struct {
		Port int `env:"TEST_LOADER_PORT"`
	}

	var c cfg
	assert.Error(t, Load(&c))
}
