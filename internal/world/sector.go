package world

import (
	"github.com/annel0/sector-stream/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry непрозрачный дескриптор отрисовываемой геометрии
type Geometry interface {
	VertexCount() int
}

// Model связывает геометрию сектора с его мировой трансформацией
type Model struct {
	Geometry  Geometry
	Transform mgl32.Mat4
}

// NewModel создаёт модель, смещённую в мировую позицию сектора
func NewModel(coord vec.Vec3, geometry Geometry) *Model {
	origin := SectorOrigin(coord)
	return &Model{
		Geometry:  geometry,
		Transform: mgl32.Translate3D(origin.X(), origin.Y(), origin.Z()),
	}
}

// Sector отдельный участок мира: сетка блоков и, возможно, модель
type Sector struct {
	grid  *Grid
	model *Model
}

// NewSector создаёт сектор без модели, забирая сетку во владение
func NewSector(grid *Grid) *Sector {
	return &Sector{grid: grid}
}

// Grid возвращает сетку блоков сектора
func (s *Sector) Grid() *Grid {
	return s.grid
}

// Model возвращает модель сектора или nil, если она ещё не построена
func (s *Sector) Model() *Model {
	return s.model
}

// HasModel сообщает, построена ли модель
func (s *Sector) HasModel() bool {
	return s.model != nil
}

// SetModel прикрепляет модель. Повторное прикрепление считается ошибкой вызывающего кода.
func (s *Sector) SetModel(m *Model) {
	if s.model != nil {
		panic("world: sector model already attached")
	}
	s.model = m
}

// AdjacentSectors временное представление шести соседних секторов
// на время одного построения меша. Ничем не владеет.
type AdjacentSectors struct {
	Back   *Sector // -Z
	Front  *Sector // +Z
	Top    *Sector // +Y
	Bottom *Sector // -Y
	Left   *Sector // -X
	Right  *Sector // +X
}

// NewAdjacentSectors собирает соседей сектора через функцию поиска.
// Возвращает false, если хотя бы одного соседа нет.
func NewAdjacentSectors(coord vec.Vec3, lookup func(vec.Vec3) (*Sector, bool)) (AdjacentSectors, bool) {
	var adj AdjacentSectors
	slots := []struct {
		dst   **Sector
		coord vec.Vec3
	}{
		{&adj.Back, coord.Back()},
		{&adj.Front, coord.Front()},
		{&adj.Top, coord.Top()},
		{&adj.Bottom, coord.Bottom()},
		{&adj.Left, coord.Left()},
		{&adj.Right, coord.Right()},
	}
	for _, slot := range slots {
		s, ok := lookup(slot.coord)
		if !ok || s == nil {
			return AdjacentSectors{}, false
		}
		*slot.dst = s
	}
	return adj, true
}
