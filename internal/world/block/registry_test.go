package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlyAirIsNotSolid(t *testing.T) {
	for b := Block(0); int(b) < Count(); b++ {
		props, exists := Properties(b)
		assert.True(t, exists, "Блок %d должен быть зарегистрирован", b)
		assert.Equal(t, b != Air, props.Solid, "Твердость блока %s", b)
		assert.Equal(t, b != Air, b.NeedsRendering(), "NeedsRendering для %s", b)
	}
}

func TestUnknownBlock(t *testing.T) {
	unknown := Block(200)

	assert.False(t, IsValid(unknown))
	_, exists := Properties(unknown)
	assert.False(t, exists)
	assert.Equal(t, "unknown", unknown.String())
	assert.Equal(t, "grass", Grass.String())
}
