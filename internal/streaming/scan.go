package streaming

import "github.com/annel0/sector-stream/internal/vec"

// GenerateOrder задаёт порядок обхода смещений по X и Z: центр, затем попеременно наружу.
// Задан явным списком, порядок важен для потребителя.
var GenerateOrder = [...]int32{0, -1, 1, -2, 2, 3, -3}

// Радиусы по умолчанию, в секторах
const (
	DefaultRenderRadius         = 2
	DefaultVerticalRenderRadius = 1
	DefaultVerticalScan         = 2
)

// ScanParams задаёт окрестность, которую воркер опрашивает каждый цикл
type ScanParams struct {
	RenderRadius         int32 // |dx|, |dz| для отрисовки
	VerticalRenderRadius int32 // |dy| для отрисовки
	VerticalScan         int32 // dy от -VerticalScan до +VerticalScan
}

// DefaultScanParams возвращает параметры обхода по умолчанию
func DefaultScanParams() ScanParams {
	return ScanParams{
		RenderRadius:         DefaultRenderRadius,
		VerticalRenderRadius: DefaultVerticalRenderRadius,
		VerticalScan:         DefaultVerticalScan,
	}
}

// ScanEntry описывает одно смещение обхода и признак попадания в радиус отрисовки
type ScanEntry struct {
	Offset       vec.Vec3
	ShouldRender bool
}

// ScanOffsets перечисляет смещения в порядке приоритета:
// dx по GenerateOrder, затем dy по возрастанию, затем dz по GenerateOrder.
func ScanOffsets(p ScanParams) []ScanEntry {
	entries := make([]ScanEntry, 0, len(GenerateOrder)*len(GenerateOrder)*int(2*p.VerticalScan+1))

	for _, dx := range GenerateOrder {
		for dy := -p.VerticalScan; dy <= p.VerticalScan; dy++ {
			for _, dz := range GenerateOrder {
				entries = append(entries, ScanEntry{
					Offset: vec.Vec3{X: dx, Y: dy, Z: dz},
					ShouldRender: abs32(dx) <= p.RenderRadius &&
						abs32(dy) <= p.VerticalRenderRadius &&
						abs32(dz) <= p.RenderRadius,
				})
			}
		}
	}
	return entries
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
