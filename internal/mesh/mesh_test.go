package mesh

import (
	"testing"

	"github.com/annel0/sector-stream/internal/world"
	"github.com/annel0/sector-stream/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjacentFilled(b block.Block) world.AdjacentSectors {
	s := func() *world.Sector { return world.NewSector(world.NewFilledGrid(b)) }
	return world.AdjacentSectors{
		Back: s(), Front: s(), Top: s(), Bottom: s(), Left: s(), Right: s(),
	}
}

func TestBuildSingleBlockInAir(t *testing.T) {
	grid := world.NewGrid()
	grid.Set(world.NewLocalCoord(5, 6, 7), block.Grass)

	m := Build(grid, adjacentFilled(block.Air))

	require.Equal(t, 6, m.FaceCount())
	assert.Equal(t, 36, m.VertexCount())

	seen := map[Face]int{}
	for _, v := range m.Vertices {
		seen[v.Face]++
		assert.GreaterOrEqual(t, v.Position[0], float32(5))
		assert.LessOrEqual(t, v.Position[0], float32(6))
	}
	for f := Face(0); f < faceCount; f++ {
		assert.Equal(t, 6, seen[f], "Грань %d", f)
	}
}

func TestBuildSolidSectorEnclosed(t *testing.T) {
	grid := world.NewFilledGrid(block.Limestone)

	m := Build(grid, adjacentFilled(block.Loam))
	assert.Zero(t, m.VertexCount(), "Полностью закрытый сектор не имеет видимых граней")
}

func TestBuildSolidSectorInAir(t *testing.T) {
	grid := world.NewFilledGrid(block.Limestone)

	m := Build(grid, adjacentFilled(block.Air))
	assert.Equal(t, 6*world.SectorSize*world.SectorSize, m.FaceCount())
}

func TestBuildBoundaryUsesAdjacentSector(t *testing.T) {
	grid := world.NewGrid()
	grid.Set(world.NewLocalCoord(0, 0, 0), block.Loam)

	adj := adjacentFilled(block.Air)
	left := world.NewGrid()
	left.Set(world.NewLocalCoord(world.SectorSize-1, 0, 0), block.Limestone)
	adj.Left = world.NewSector(left)

	m := Build(grid, adj)
	assert.Equal(t, 5, m.FaceCount(), "Левая грань закрыта соседним сектором")
	for _, v := range m.Vertices {
		assert.NotEqual(t, FaceLeft, v.Face)
	}
}

func TestBuildAtlasUV(t *testing.T) {
	grid := world.NewGrid()
	grid.Set(world.NewLocalCoord(1, 1, 1), block.Leaves)

	m := NewBuilder().BuildMesh(grid, adjacentFilled(block.Air)).(*Mesh)
	u0 := float32(block.Leaves.Tile()) / AtlasTiles
	u1 := float32(block.Leaves.Tile()+1) / AtlasTiles
	for _, v := range m.Vertices {
		assert.True(t, v.UV[0] == u0 || v.UV[0] == u1)
	}
}
