package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, 8765, cfg.port)
	assert.Equal(t, 10, cfg.slots)
	assert.Equal(t, 10, cfg.slotCap)
	assert.Equal(t, "1,5,10,20,50,100", cfg.denominations)
	assert.Equal(t, 10, cfg.floatPerNote)
	assert.False(t, cfg.interactive)
}

func TestParseFlagsOverrides(t *testing.T) {
	cfg, err := parseFlags([]string{"-port", "9000", "-interactive", "-denominations", "5,10", "-float", "4"})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.port)
	assert.True(t, cfg.interactive)
	assert.Equal(t, "5,10", cfg.denominations)
	assert.Equal(t, 4, cfg.floatPerNote)
}

func TestParseDenominations(t *testing.T) {
	values, err := parseDenominations(" 1, 5 ,10 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 10}, values)

	_, err = parseDenominations("1,five")
	assert.Error(t, err)

	_, err = parseDenominations(" , ")
	assert.Error(t, err)
}

func TestAddressHonorsPortEnv(t *testing.T) {
	t.Setenv("PORT", "7777")
	assert.Equal(t, ":7777", Config{port: 8765}.address())
}
