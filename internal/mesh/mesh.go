package mesh

import (
	"github.com/annel0/sector-stream/internal/world"
	"github.com/annel0/sector-stream/internal/world/block"
)

// AtlasTiles задаёт количество тайлов в строке текстурного атласа
const AtlasTiles = 8

// Face номер грани куба. Заменяет нормаль: на кубе она всегда вдоль оси.
type Face uint32

const (
	FaceBack   Face = iota // -Z
	FaceFront              // +Z
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceLeft               // -X
	FaceRight              // +X

	faceCount
)

// Vertex вершина меша ландшафта
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Face     Face
}

// Mesh набор треугольников одного сектора
type Mesh struct {
	Vertices []Vertex
}

// VertexCount возвращает количество вершин
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount возвращает количество граней (по 6 вершин на грань)
func (m *Mesh) FaceCount() int {
	return len(m.Vertices) / 6
}

// Углы каждой грани против часовой стрелки, если смотреть снаружи
var faceCorners = [faceCount][4][3]float32{
	FaceBack:   {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	FaceFront:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	FaceTop:    {{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
	FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	FaceLeft:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	FaceRight:  {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
}

// Два треугольника на грань
var quadOrder = [6]int{0, 1, 2, 0, 2, 3}

// Builder строит меш сектора, отсекая грани, закрытые соседними блоками.
// Без состояния: один экземпляр можно использовать повторно.
type Builder struct{}

// NewBuilder создаёт построитель мешей
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildMesh строит геометрию сетки с учётом шести соседних секторов
func (b *Builder) BuildMesh(grid *world.Grid, adj world.AdjacentSectors) world.Geometry {
	return Build(grid, adj)
}

// Build строит меш: грань выводится, только если соседний воксель пустой
func Build(grid *world.Grid, adj world.AdjacentSectors) *Mesh {
	m := &Mesh{}
	for c, blk := range grid.All() {
		if !blk.NeedsRendering() {
			continue
		}
		for f := Face(0); f < faceCount; f++ {
			if neighbor(grid, adj, c, f).NeedsRendering() {
				continue
			}
			m.appendFace(c, f, blk)
		}
	}
	return m
}

func (m *Mesh) appendFace(c world.LocalCoord, f Face, blk block.Block) {
	u0 := float32(blk.Tile()) / AtlasTiles
	u1 := float32(blk.Tile()+1) / AtlasTiles
	uvs := [4][2]float32{{u0, 1}, {u1, 1}, {u1, 0}, {u0, 0}}

	corners := faceCorners[f]
	for _, i := range quadOrder {
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{
				float32(c.X()) + corners[i][0],
				float32(c.Y()) + corners[i][1],
				float32(c.Z()) + corners[i][2],
			},
			UV:   uvs[i],
			Face: f,
		})
	}
}

// neighbor возвращает блок за гранью f. На границе сектора читается
// соседний сектор в зеркальной координате.
func neighbor(grid *world.Grid, adj world.AdjacentSectors, c world.LocalCoord, f Face) block.Block {
	const last = world.SectorSize - 1

	var (
		n  world.LocalCoord
		ok bool
	)
	switch f {
	case FaceBack:
		if n, ok = c.Back(); !ok {
			return adj.Back.Grid().Get(world.NewLocalCoord(c.X(), c.Y(), last))
		}
	case FaceFront:
		if n, ok = c.Front(); !ok {
			return adj.Front.Grid().Get(world.NewLocalCoord(c.X(), c.Y(), 0))
		}
	case FaceTop:
		if n, ok = c.Top(); !ok {
			return adj.Top.Grid().Get(world.NewLocalCoord(c.X(), 0, c.Z()))
		}
	case FaceBottom:
		if n, ok = c.Bottom(); !ok {
			return adj.Bottom.Grid().Get(world.NewLocalCoord(c.X(), last, c.Z()))
		}
	case FaceLeft:
		if n, ok = c.Left(); !ok {
			return adj.Left.Grid().Get(world.NewLocalCoord(last, c.Y(), c.Z()))
		}
	case FaceRight:
		if n, ok = c.Right(); !ok {
			return adj.Right.Grid().Get(world.NewLocalCoord(0, c.Y(), c.Z()))
		}
	}
	return grid.Get(n)
}
