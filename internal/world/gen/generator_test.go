package gen

import (
	"testing"

	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
	"github.com/annel0/sector-stream/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	coord := vec.Vec3{X: 3, Y: 0, Z: -2}

	a := NewGenerator(12345).Generate(coord)
	b := NewGenerator(12345).Generate(coord)

	require.Equal(t, *a, *b, "Один сид и одна координата должны давать одинаковый сектор")
}

func TestGenerateHighSectorIsAir(t *testing.T) {
	g := NewGenerator(12345)
	grid := g.Generate(vec.Vec3{X: 0, Y: 10, Z: 0})

	assert.False(t, grid.NeedsRendering(), "Сектор высоко над поверхностью должен быть пустым")
}

func TestGenerateDeepSectorIsMostlyLimestone(t *testing.T) {
	g := NewGenerator(12345)
	grid := g.Generate(vec.Vec3{X: 0, Y: -10, Z: 0})

	assert.Zero(t, grid.Count(block.Grass))
	assert.Zero(t, grid.Count(block.Loam))
	assert.Greater(t, grid.Count(block.Limestone), world.SectorLen/2)
}

func TestGenerateSurfaceStrata(t *testing.T) {
	g := NewGenerator(7)
	coord := vec.Vec3{X: 1, Y: 0, Z: 1}
	grid := g.Generate(coord)

	for z := 0; z < world.SectorSize; z++ {
		for x := 0; x < world.SectorSize; x++ {
			wx := int(coord.X)*world.SectorSize + x
			wz := int(coord.Z)*world.SectorSize + z
			surface := g.SurfaceHeight(wx, wz)
			if surface < 0 || surface >= world.SectorSize {
				continue
			}
			got := grid.Get(world.NewLocalCoord(x, surface, z))
			assert.Equal(t, block.Grass, got, "Поверхность колонки (%d,%d)", x, z)
			if surface >= 1 {
				assert.Equal(t, block.Loam, grid.Get(world.NewLocalCoord(x, surface-1, z)))
			}
		}
	}
}

func TestPlaceTreeFitsInside(t *testing.T) {
	g := NewGenerator(1)
	grid := world.NewGrid()

	g.placeTree(grid, 0, 5, 5, newTestRand())
	assert.False(t, grid.NeedsRendering(), "Дерево у края сектора не ставится")

	g.placeTree(grid, 10, 5, 10, newTestRand())
	assert.Equal(t, block.Tree, grid.Get(world.NewLocalCoord(10, 6, 10)))
	assert.Positive(t, grid.Count(block.Leaves))
}
