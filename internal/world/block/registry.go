package block

// Block представляет тип вокселя в мире.
// Набор значений закрыт: Air единственный нетвердый блок.
type Block uint8

// Константы блоков
const (
	Air       Block = iota // 0
	Limestone              // 1
	Loam                   // 2
	Grass                  // 3
	Tree                   // 4 - ствол
	Leaves                 // 5

	blockCount // всегда последний
)

// Props описывает статические свойства типа блока
type Props struct {
	Name  string
	Solid bool
	Tile  uint8 // Номер тайла в текстурном атласе
}

var registry = map[Block]Props{
	Air:       {Name: "air", Solid: false},
	Limestone: {Name: "limestone", Solid: true, Tile: 0},
	Loam:      {Name: "loam", Solid: true, Tile: 1},
	Grass:     {Name: "grass", Solid: true, Tile: 2},
	Tree:      {Name: "tree", Solid: true, Tile: 3},
	Leaves:    {Name: "leaves", Solid: true, Tile: 4},
}

// Properties возвращает свойства для указанного блока
func Properties(b Block) (Props, bool) {
	p, exists := registry[b]
	return p, exists
}

// IsValid проверяет, является ли значение допустимым блоком
func IsValid(b Block) bool {
	return b < blockCount
}

// Count возвращает количество зарегистрированных типов блоков
func Count() int {
	return int(blockCount)
}

// IsAir определяет, является ли блок воздухом
func (b Block) IsAir() bool {
	return b == Air
}

// NeedsRendering определяет, нужно ли отрисовывать блок
func (b Block) NeedsRendering() bool {
	return !b.IsAir()
}

// Tile возвращает номер тайла атласа для блока
func (b Block) Tile() uint8 {
	return registry[b].Tile
}

func (b Block) String() string {
	if p, ok := registry[b]; ok {
		return p.Name
	}
	return "unknown"
}
