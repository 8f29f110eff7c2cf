package gen

import (
	"math"
	"math/rand"

	"github.com/annel0/sector-stream/internal/util"
	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
	"github.com/annel0/sector-stream/internal/world/block"
)

// Константы слоёв рельефа
const (
	LoamDepth     = 4   // Толщина слоя суглинка под травой
	CaveThreshold = 0.8 // Выше порога пещера
	CaveMinDepth  = 6   // Пещеры не подходят к поверхности ближе
)

// Generator генерирует сектора мира по их координатам.
// Результат детерминирован для пары (сид, координата).
type Generator struct {
	Seed        int64   // Сид для генерации шума
	NoiseScale  float64 // Масштаб шума высот
	CaveScale   float64 // Масштаб шума пещер
	BaseHeight  float64 // Средняя высота поверхности в вокселях
	Amplitude   float64 // Размах высот относительно средней
	TreeDensity float64 // Вероятность дерева на подходящей колонке (от 0 до 1)

	noise *util.Noise
}

// NewGenerator создаёт новый генератор мира
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:        seed,
		NoiseScale:  0.01,
		CaveScale:   0.06,
		BaseHeight:  0,
		Amplitude:   40,
		TreeDensity: 0.01,
		noise:       util.NewNoise(seed),
	}
}

// Generate строит полную сетку блоков для сектора
func (g *Generator) Generate(coord vec.Vec3) *world.Grid {
	grid := world.NewGrid()

	// Для каждого сектора свой сид на основе глобального сида и координат
	sectorSeed := g.Seed + int64(coord.X)*31 + int64(coord.Z)*17 + int64(coord.Y)*13
	rng := rand.New(rand.NewSource(sectorSeed))

	originX := int(coord.X) * world.SectorSize
	originY := int(coord.Y) * world.SectorSize
	originZ := int(coord.Z) * world.SectorSize

	for z := 0; z < world.SectorSize; z++ {
		for x := 0; x < world.SectorSize; x++ {
			wx := originX + x
			wz := originZ + z
			surface := g.SurfaceHeight(wx, wz)

			for y := 0; y < world.SectorSize; y++ {
				wy := originY + y
				b := g.blockAt(wx, wy, wz, surface)
				if b != block.Air {
					grid.Set(world.NewLocalCoord(x, y, z), b)
				}
			}

			// Деревья только там, где поверхность внутри сектора
			localSurface := surface - originY
			if localSurface >= 0 && localSurface < world.SectorSize && rng.Float64() < g.TreeDensity {
				g.placeTree(grid, x, localSurface, z, rng)
			}
		}
	}

	return grid
}

// SurfaceHeight возвращает мировую высоту поверхности в колонке
func (g *Generator) SurfaceHeight(wx, wz int) int {
	n := g.noise.Noise2D(float64(wx)*g.NoiseScale, float64(wz)*g.NoiseScale)
	return int(math.Round(g.BaseHeight + g.Amplitude*(n-0.5)*2))
}

// blockAt определяет блок в мировой точке по высоте поверхности
func (g *Generator) blockAt(wx, wy, wz, surface int) block.Block {
	switch {
	case wy > surface:
		return block.Air
	case wy == surface:
		return block.Grass
	case wy > surface-LoamDepth:
		return block.Loam
	}

	if wy < surface-CaveMinDepth {
		cave := g.noise.Noise3D(float64(wx)*g.CaveScale, float64(wy)*g.CaveScale, float64(wz)*g.CaveScale)
		if cave > CaveThreshold {
			return block.Air
		}
	}
	return block.Limestone
}

// placeTree ставит ствол и крону, если дерево целиком помещается в сектор
func (g *Generator) placeTree(grid *world.Grid, x, surface, z int, rng *rand.Rand) {
	trunk := 3 + rng.Intn(3) // Высота ствола 3-5 блоков
	const crown = 2          // Радиус кроны

	if x < crown || z < crown || x >= world.SectorSize-crown || z >= world.SectorSize-crown {
		return
	}
	top := surface + trunk
	if top+1 >= world.SectorSize {
		return
	}

	for y := surface + 1; y <= top; y++ {
		grid.Set(world.NewLocalCoord(x, y, z), block.Tree)
	}

	for y := top - 1; y <= top+1; y++ {
		r := crown
		if y == top+1 {
			r = 1
		}
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				c := world.NewLocalCoord(x+dx, y, z+dz)
				if grid.Get(c) == block.Air {
					grid.Set(c, block.Leaves)
				}
			}
		}
	}
}
