package streaming

import (
	"testing"

	"github.com/annel0/sector-stream/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanOffsetsOrder(t *testing.T) {
	entries := ScanOffsets(DefaultScanParams())
	require.Len(t, entries, 7*5*7)

	// Внешний цикл по X, средний по Y, внутренний по Z
	assert.Equal(t, vec.Vec3{X: 0, Y: -2, Z: 0}, entries[0].Offset)
	assert.Equal(t, vec.Vec3{X: 0, Y: -2, Z: -1}, entries[1].Offset)
	assert.Equal(t, vec.Vec3{X: 0, Y: -1, Z: 0}, entries[7].Offset)
	assert.Equal(t, vec.Vec3{X: -1, Y: -2, Z: 0}, entries[35].Offset)
	assert.Equal(t, vec.Vec3{X: -3, Y: 2, Z: -3}, entries[len(entries)-1].Offset)

	seen := make(map[vec.Vec3]bool)
	render := 0
	for _, e := range entries {
		assert.False(t, seen[e.Offset], "Смещение %s повторяется", e.Offset)
		seen[e.Offset] = true

		want := abs32(e.Offset.X) <= 2 && abs32(e.Offset.Y) <= 1 && abs32(e.Offset.Z) <= 2
		assert.Equal(t, want, e.ShouldRender, "Смещение %s", e.Offset)
		if e.ShouldRender {
			render++
		}
	}
	assert.Equal(t, 5*3*5, render)
}

func TestScanCenterBeforeOuterColumns(t *testing.T) {
	entries := ScanOffsets(DefaultScanParams())

	center := -1
	firstOuter := -1
	for i, e := range entries {
		if e.Offset == (vec.Vec3{}) && center < 0 {
			center = i
		}
		if e.Offset.X != 0 && firstOuter < 0 {
			firstOuter = i
		}
	}
	require.GreaterOrEqual(t, center, 0)
	assert.Less(t, center, firstOuter)
	assert.True(t, entries[center].ShouldRender)
}

func TestScanOffsetsCustomRadius(t *testing.T) {
	entries := ScanOffsets(ScanParams{RenderRadius: 1, VerticalRenderRadius: 0, VerticalScan: 0})
	require.Len(t, entries, 7*7)

	render := 0
	for _, e := range entries {
		assert.Zero(t, e.Offset.Y)
		if e.ShouldRender {
			render++
		}
	}
	assert.Equal(t, 9, render)
}
