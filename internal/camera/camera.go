package camera

import (
	"math"

	"github.com/annel0/sector-stream/internal/render"
	"github.com/go-gl/mathgl/mgl32"
)

// MovementDirection направление движения камеры
type MovementDirection int

const (
	Forward MovementDirection = iota
	Backward
	Left
	Right
)

// Параметры проекции по умолчанию
const (
	DefaultFovY   = 70.0 // градусы
	DefaultAspect = 16.0 / 9.0
	DefaultNear   = 0.1
	DefaultFar    = 1000.0
)

// Camera камера от первого лица
type Camera struct {
	pos        mgl32.Vec3
	pitch      float32 // Поворот вокруг X, радианы
	yaw        float32 // Поворот вокруг Y, радианы
	projection mgl32.Mat4
}

// New создаёт камеру в начале координат (0, 0, 0)
func New() *Camera {
	return &Camera{
		projection: mgl32.Perspective(mgl32.DegToRad(DefaultFovY), DefaultAspect, DefaultNear, DefaultFar),
	}
}

// Translation возвращает позицию камеры
func (c *Camera) Translation() mgl32.Vec3 {
	return c.pos
}

// SetTranslation перемещает камеру в позицию
func (c *Camera) SetTranslation(pos mgl32.Vec3) {
	c.pos = pos
}

// Rotation возвращает наклон и поворот камеры
func (c *Camera) Rotation() (pitch, yaw float32) {
	return c.pitch, c.yaw
}

// SetRotation задаёт наклон и поворот камеры
func (c *Camera) SetRotation(pitch, yaw float32) {
	c.pitch = pitch
	c.yaw = yaw
}

// SetProjection задаёт перспективную проекцию
func (c *Camera) SetProjection(fovYDeg, aspect, near, far float32) {
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovYDeg), aspect, near, far)
}

// Projection возвращает матрицу проекции
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// MoveDir сдвигает камеру в плоскости XZ относительно текущего поворота
func (c *Camera) MoveDir(dir MovementDirection, distance float32) {
	yaw := float64(c.yaw)
	if dir == Left || dir == Right {
		yaw += math.Pi / 2
	}
	dx := distance * float32(math.Sin(yaw))
	dz := distance * float32(math.Cos(yaw))

	switch dir {
	case Forward, Left:
		c.pos = mgl32.Vec3{c.pos.X() - dx, c.pos.Y(), c.pos.Z() - dz}
	case Backward, Right:
		c.pos = mgl32.Vec3{c.pos.X() + dx, c.pos.Y(), c.pos.Z() + dz}
	}
}

// ViewMatrix возвращает матрицу вида: обратный поворот после обратного сдвига
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(-c.pitch).Mul4(mgl32.HomogRotate3DY(-c.yaw))
	return rot.Mul4(mgl32.Translate3D(-c.pos.X(), -c.pos.Y(), -c.pos.Z()))
}

// Planes извлекает шесть нормализованных плоскостей пирамиды видимости
// из произведения проекции и вида. Внутренняя сторона — положительная.
func (c *Camera) Planes() [6]render.Plane {
	m := c.projection.Mul4(c.ViewMatrix())
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	raw := [6]mgl32.Vec4{
		r3.Add(r0), // левая
		r3.Sub(r0), // правая
		r3.Add(r1), // нижняя
		r3.Sub(r1), // верхняя
		r3.Add(r2), // ближняя
		r3.Sub(r2), // дальняя
	}

	var planes [6]render.Plane
	for i, p := range raw {
		n := p.Vec3().Len()
		if n == 0 {
			n = 1
		}
		planes[i] = render.Plane{A: p.X() / n, B: p.Y() / n, C: p.Z() / n, D: p.W() / n}
	}
	return planes
}

// Frustum возвращает снимок плоскостей как render.Frustum
func (c *Camera) Frustum() render.Frustum {
	return render.Planes(c.Planes())
}
