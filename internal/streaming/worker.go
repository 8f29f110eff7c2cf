package streaming

import (
	"context"
	"errors"
	"time"

	"github.com/annel0/sector-stream/internal/logging"
	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const tracerName = "github.com/annel0/sector-stream/internal/streaming"

// DefaultScanInterval пауза между циклами воркера
const DefaultScanInterval = 3 * time.Second

// Generator строит сетку сектора по его координате. Должен быть детерминированным.
type Generator interface {
	Generate(coord vec.Vec3) *world.Grid
}

// WorkerStats накопленные счётчики воркера
type WorkerStats struct {
	Cycles     atomic.Uint64
	Queries    atomic.Uint64
	Generated  atomic.Uint64
	Duplicates atomic.Uint64 // Повторные Need в одном проходе
}

// Worker опрашивает окрестность наблюдателя и генерирует секторы по запросу
type Worker struct {
	observer *SharedObserver
	out      *Queue[Message]
	needs    *Queue[Need]
	gen      Generator
	offsets  []ScanEntry
	interval time.Duration

	stats  WorkerStats
	logger *logging.Logger
	tracer trace.Tracer
}

// NewWorker создаёт воркер. Очереди и наблюдатель разделяются с потребителем.
func NewWorker(observer *SharedObserver, out *Queue[Message], needs *Queue[Need], gen Generator, scan ScanParams, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &Worker{
		observer: observer,
		out:      out,
		needs:    needs,
		gen:      gen,
		offsets:  ScanOffsets(scan),
		interval: interval,
		logger:   logging.GetWorkerLogger(),
		tracer:   otel.Tracer(tracerName),
	}
}

// Stats возвращает счётчики воркера
func (w *Worker) Stats() *WorkerStats {
	return &w.stats
}

// Run выполняет циклы до закрытия любой из очередей или отмены ctx
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("🚀 Воркер генерации запущен (интервал %v, смещений %d)", w.interval, len(w.offsets))

	for {
		if err := w.Cycle(ctx); err != nil {
			if errors.Is(err, ErrQueueClosed) {
				w.logger.Info("🛑 Очередь закрыта, воркер генерации остановлен")
			} else {
				w.logger.Error("Ошибка цикла воркера: %v", err)
			}
			return
		}

		timer := time.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("🛑 Воркер генерации остановлен: %v", ctx.Err())
			return
		case <-w.out.Done():
			timer.Stop()
		case <-w.needs.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
}

// Cycle выполняет один цикл: запросы по всей окрестности, затем обслуживание Need.
// Возвращает ErrQueueClosed, если потребитель закрыл очереди.
func (w *Worker) Cycle(ctx context.Context) error {
	_, span := w.tracer.Start(ctx, "worker.cycle")
	defer span.End()

	pos := w.observer.Load()
	center := world.SectorAt(pos)
	span.SetAttributes(
		attribute.Int("sector.x", int(center.X)),
		attribute.Int("sector.y", int(center.Y)),
		attribute.Int("sector.z", int(center.Z)),
	)

	for _, e := range w.offsets {
		msg := QueryMessage{Coord: center.Add(e.Offset), ShouldRender: e.ShouldRender}
		if err := w.send(msg); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		w.stats.Queries.Inc()
	}

	generated, err := w.serviceNeeds()
	span.SetAttributes(attribute.Int("generated", generated))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	w.stats.Cycles.Inc()
	w.logger.Trace("Цикл воркера: центр %s, сгенерировано %d", center, generated)
	return nil
}

// serviceNeeds обрабатывает все ожидающие Need, каждую координату один раз за проход
func (w *Worker) serviceNeeds() (int, error) {
	seen := make(map[vec.Vec3]struct{})
	generated := 0

	for {
		need, ok := w.needs.TryRecv()
		if !ok {
			return generated, nil
		}
		if _, dup := seen[need.Coord]; dup {
			w.stats.Duplicates.Inc()
			continue
		}
		seen[need.Coord] = struct{}{}

		grid := w.gen.Generate(need.Coord)
		if err := w.send(GeneratedMessage{Coord: need.Coord, Grid: grid}); err != nil {
			return generated, err
		}
		w.stats.Generated.Inc()
		generated++
	}
}

// send отправляет сообщение потребителю. Закрытие любой из очередей завершает воркер.
func (w *Worker) send(m Message) error {
	if w.needs.Closed() {
		return ErrQueueClosed
	}
	return w.out.Send(m)
}
