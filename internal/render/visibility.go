package render

import (
	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane задаёт полупространство a*x + b*y + c*z + d >= 0
type Plane struct {
	A, B, C, D float32
}

// Distance возвращает знаковое расстояние от плоскости до точки
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.A*pt.X() + p.B*pt.Y() + p.C*pt.Z() + p.D
}

// Frustum предоставляет шесть плоскостей пирамиды видимости
type Frustum interface {
	Planes() [6]Plane
}

// Planes фиксированный набор плоскостей, реализующий Frustum
type Planes [6]Plane

// Planes возвращает набор плоскостей
func (p Planes) Planes() [6]Plane {
	return p
}

// SectorCenter возвращает мировую позицию центра сектора
func SectorCenter(coord vec.Vec3) mgl32.Vec3 {
	const half = world.SectorSize / 2
	return world.SectorOrigin(coord).Add(mgl32.Vec3{half, half, half})
}

// SectorVisible проверяет сектор как сферу радиусом в длину сектора.
// Сектор невидим, только если он целиком за какой-либо плоскостью.
func SectorVisible(planes [6]Plane, coord vec.Vec3) bool {
	center := SectorCenter(coord)
	for _, p := range planes {
		if p.Distance(center) <= -world.SectorSize {
			return false
		}
	}
	return true
}
