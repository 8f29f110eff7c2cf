package vec

import "fmt"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется как координата сектора в решетке мира.
type Vec3 struct {
	X int32
	Y int32
	Z int32
}

// DistanceSq возвращает квадрат евклидова расстояния до другого вектора
func (v Vec3) DistanceSq(other Vec3) int64 {
	dx := int64(v.X) - int64(other.X)
	dy := int64(v.Y) - int64(other.Y)
	dz := int64(v.Z) - int64(other.Z)
	return dx*dx + dy*dy + dz*dz
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Back возвращает соседа по -Z
func (v Vec3) Back() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z - 1} }

// Front возвращает соседа по +Z
func (v Vec3) Front() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z + 1} }

// Top возвращает соседа по +Y
func (v Vec3) Top() Vec3 { return Vec3{X: v.X, Y: v.Y + 1, Z: v.Z} }

// Bottom возвращает соседа по -Y
func (v Vec3) Bottom() Vec3 { return Vec3{X: v.X, Y: v.Y - 1, Z: v.Z} }

// Left возвращает соседа по -X
func (v Vec3) Left() Vec3 { return Vec3{X: v.X - 1, Y: v.Y, Z: v.Z} }

// Right возвращает соседа по +X
func (v Vec3) Right() Vec3 { return Vec3{X: v.X + 1, Y: v.Y, Z: v.Z} }

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
