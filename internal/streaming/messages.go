package streaming

import (
	"fmt"

	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
)

// MessageType определяет тип сообщения от воркера генерации
type MessageType uint8

const (
	MessageQuery     MessageType = iota // Запрос: нужен ли сектор
	MessageGenerated                    // Готовая сетка сектора
)

func (t MessageType) String() string {
	switch t {
	case MessageQuery:
		return "query"
	case MessageGenerated:
		return "generated"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// Message сообщение воркера потребителю
type Message interface {
	GetType() MessageType
}

// QueryMessage спрашивает потребителя о секторе рядом с наблюдателем
type QueryMessage struct {
	Coord        vec.Vec3
	ShouldRender bool // Сектор в радиусе отрисовки
}

func (m QueryMessage) GetType() MessageType {
	return MessageQuery
}

// GeneratedMessage несёт сгенерированную сетку сектора
type GeneratedMessage struct {
	Coord vec.Vec3
	Grid  *world.Grid
}

func (m GeneratedMessage) GetType() MessageType {
	return MessageGenerated
}

// Need запрос потребителя на генерацию сектора
type Need struct {
	Coord vec.Vec3
}
