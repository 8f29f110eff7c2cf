package world

import (
	"fmt"
	"math"

	"github.com/annel0/sector-stream/internal/vec"
	"github.com/go-gl/mathgl/mgl32"
)

// SectorSize длина стороны кубического сектора в вокселях
const SectorSize = 32

// SectorLen количество вокселей в секторе
const SectorLen = SectorSize * SectorSize * SectorSize

// LocalCoord координаты вокселя внутри одного сектора.
// Каждая компонента лежит в [0, SectorSize).
type LocalCoord struct {
	x, y, z uint8
}

// NewLocalCoord создаёт координату внутри сектора.
// Паникует, если любая компонента вне диапазона: это ошибка вызывающего кода.
func NewLocalCoord(x, y, z int) LocalCoord {
	c, ok := TryLocalCoord(x, y, z)
	if !ok {
		panic(fmt.Sprintf("world: local coord (%d,%d,%d) out of range", x, y, z))
	}
	return c
}

// TryLocalCoord создаёт координату, сообщая о выходе за границы вместо паники
func TryLocalCoord(x, y, z int) (LocalCoord, bool) {
	if x < 0 || y < 0 || z < 0 || x >= SectorSize || y >= SectorSize || z >= SectorSize {
		return LocalCoord{}, false
	}
	return LocalCoord{x: uint8(x), y: uint8(y), z: uint8(z)}, true
}

func (c LocalCoord) X() int { return int(c.x) }
func (c LocalCoord) Y() int { return int(c.y) }
func (c LocalCoord) Z() int { return int(c.z) }

// Back возвращает воксель позади (-Z), если он в этом же секторе
func (c LocalCoord) Back() (LocalCoord, bool) {
	return TryLocalCoord(c.X(), c.Y(), c.Z()-1)
}

// Front возвращает воксель спереди (+Z), если он в этом же секторе
func (c LocalCoord) Front() (LocalCoord, bool) {
	return TryLocalCoord(c.X(), c.Y(), c.Z()+1)
}

// Top возвращает воксель сверху (+Y), если он в этом же секторе
func (c LocalCoord) Top() (LocalCoord, bool) {
	return TryLocalCoord(c.X(), c.Y()+1, c.Z())
}

// Bottom возвращает воксель снизу (-Y), если он в этом же секторе
func (c LocalCoord) Bottom() (LocalCoord, bool) {
	return TryLocalCoord(c.X(), c.Y()-1, c.Z())
}

// Left возвращает воксель слева (-X), если он в этом же секторе
func (c LocalCoord) Left() (LocalCoord, bool) {
	return TryLocalCoord(c.X()-1, c.Y(), c.Z())
}

// Right возвращает воксель справа (+X), если он в этом же секторе
func (c LocalCoord) Right() (LocalCoord, bool) {
	return TryLocalCoord(c.X()+1, c.Y(), c.Z())
}

func (c LocalCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.x, c.y, c.z)
}

// SectorAt возвращает координаты сектора, содержащего мировую позицию.
// Каждая компонента округляется до целого, затем делится с округлением вниз.
func SectorAt(pos mgl32.Vec3) vec.Vec3 {
	axis := func(v float32) int32 {
		r := math.Round(float64(v))
		return int32(math.Floor(r / SectorSize))
	}
	return vec.Vec3{X: axis(pos.X()), Y: axis(pos.Y()), Z: axis(pos.Z())}
}

// SectorOrigin возвращает мировую позицию угла сектора
func SectorOrigin(coord vec.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(coord.X) * SectorSize,
		float32(coord.Y) * SectorSize,
		float32(coord.Z) * SectorSize,
	}
}
