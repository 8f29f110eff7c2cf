package world

import (
	"iter"

	"github.com/annel0/sector-stream/internal/world/block"
)

// Grid хранит блоки одного сектора в линейном массиве.
// Индекс: x + y*N + z*N*N, x меняется быстрее всего.
type Grid struct {
	blocks [SectorLen]block.Block
}

// NewGrid создаёт сетку, заполненную воздухом
func NewGrid() *Grid {
	return &Grid{}
}

// NewFilledGrid создаёт сетку, заполненную указанным блоком
func NewFilledGrid(b block.Block) *Grid {
	g := &Grid{}
	g.Fill(b)
	return g
}

// Index возвращает линейный индекс локальной координаты
func Index(c LocalCoord) int {
	return c.X() + c.Y()*SectorSize + c.Z()*SectorSize*SectorSize
}

// CoordAt восстанавливает локальную координату по линейному индексу
func CoordAt(index int) LocalCoord {
	x := index % SectorSize
	y := (index / SectorSize) % SectorSize
	z := index / (SectorSize * SectorSize)
	return NewLocalCoord(x, y, z)
}

// Get возвращает блок по локальным координатам
func (g *Grid) Get(c LocalCoord) block.Block {
	return g.blocks[Index(c)]
}

// Set устанавливает блок по локальным координатам
func (g *Grid) Set(c LocalCoord, b block.Block) {
	g.blocks[Index(c)] = b
}

// Fill заполняет всю сетку одним блоком
func (g *Grid) Fill(b block.Block) {
	for i := range g.blocks {
		g.blocks[i] = b
	}
}

// NeedsRendering возвращает true, если в сетке есть хотя бы один не-воздух
func (g *Grid) NeedsRendering() bool {
	for _, b := range g.blocks {
		if b.NeedsRendering() {
			return true
		}
	}
	return false
}

// Count возвращает количество блоков указанного типа
func (g *Grid) Count(b block.Block) int {
	n := 0
	for _, v := range g.blocks {
		if v == b {
			n++
		}
	}
	return n
}

// All перебирает все воксели по возрастанию x, затем y, затем z.
// Каждый вызов начинает обход заново.
func (g *Grid) All() iter.Seq2[LocalCoord, block.Block] {
	return func(yield func(LocalCoord, block.Block) bool) {
		for z := 0; z < SectorSize; z++ {
			for y := 0; y < SectorSize; y++ {
				for x := 0; x < SectorSize; x++ {
					c := LocalCoord{x: uint8(x), y: uint8(y), z: uint8(z)}
					if !yield(c, g.blocks[Index(c)]) {
						return
					}
				}
			}
		}
	}
}
