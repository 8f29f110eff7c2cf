package streaming

import (
	"context"
	"sync"
	"time"

	"github.com/annel0/sector-stream/internal/logging"
	"github.com/annel0/sector-stream/internal/render"
	"github.com/annel0/sector-stream/internal/vec"
	"github.com/annel0/sector-stream/internal/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Значения по умолчанию для кэша секторов
const (
	DefaultDrainBudget     = 50 * time.Millisecond
	DefaultEvictDistanceSq = 280
)

// Mesher строит геометрию сектора по его сетке и шести соседям
type Mesher interface {
	BuildMesh(grid *world.Grid, adj world.AdjacentSectors) world.Geometry
}

// Options настраивает Streamer
type Options struct {
	Scan            ScanParams
	DrainBudget     time.Duration // Бюджет разбора очереди за цикл
	EvictDistanceSq int64         // Секторы на квадрате расстояния >= порога вытесняются
	ScanInterval    time.Duration // Пауза воркера между циклами
	StartPosition   mgl32.Vec3    // Позиция наблюдателя до первого Advance

	// Registerer для метрик; при nil метрики не регистрируются
	Registerer prometheus.Registerer
	// Clock для бюджета разбора, по умолчанию time.Now
	Clock func() time.Time
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		Scan:            DefaultScanParams(),
		DrainBudget:     DefaultDrainBudget,
		EvictDistanceSq: DefaultEvictDistanceSq,
		ScanInterval:    DefaultScanInterval,
	}
}

// AdvanceResult итог одного цикла Advance
type AdvanceResult struct {
	Processed       int  // Сообщений разобрано
	NeedsSent       int  // Need отправлено воркеру
	Inserted        int  // Новых секторов в кэше
	Duplicates      int  // Generated для уже известных координат
	Meshed          int  // Построено моделей
	Deferred        int  // Отложено из-за отсутствующих соседей
	Skipped         int  // Пустые секторы или уже с моделью
	Evicted         int  // Вытеснено по расстоянию
	StoppedEarly    bool // Разбор остановлен на запросе вне радиуса отрисовки
	BudgetExhausted bool // Разбор остановлен по бюджету
	DrainTime       time.Duration
}

// Streamer владеет кэшем секторов на стороне потребителя.
// Все методы, кроме Close, вызываются из одной горутины.
type Streamer struct {
	id      uuid.UUID
	sectors map[vec.Vec3]*world.Sector

	observer *SharedObserver
	inbox    *Queue[Message]
	needs    *Queue[Need]
	worker   *Worker
	mesher   Mesher

	opts    Options
	now     func() time.Time
	metrics *Metrics
	logger  *logging.Logger
	tracer  trace.Tracer

	closeOnce sync.Once
}

// NewStreamer связывает кэш, очереди, наблюдателя и воркер. Воркер
// не запускается до вызова Start.
func NewStreamer(gen Generator, mesher Mesher, opts Options) *Streamer {
	defaults := DefaultOptions()
	if opts.DrainBudget <= 0 {
		opts.DrainBudget = defaults.DrainBudget
	}
	if opts.EvictDistanceSq <= 0 {
		opts.EvictDistanceSq = defaults.EvictDistanceSq
	}
	if opts.ScanInterval <= 0 {
		opts.ScanInterval = defaults.ScanInterval
	}
	if opts.Scan == (ScanParams{}) {
		opts.Scan = defaults.Scan
	}

	s := &Streamer{
		id:       uuid.New(),
		sectors:  make(map[vec.Vec3]*world.Sector),
		observer: NewSharedObserver(opts.StartPosition),
		inbox:    NewQueue[Message](),
		needs:    NewQueue[Need](),
		mesher:   mesher,
		opts:     opts,
		now:      opts.Clock,
		logger:   logging.GetStreamerLogger(),
		tracer:   otel.Tracer(tracerName),
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.worker = NewWorker(s.observer, s.inbox, s.needs, gen, opts.Scan, opts.ScanInterval)
	s.metrics = NewMetrics(opts.Registerer, s.id.String(), s.worker.Stats())
	return s
}

// ID возвращает идентификатор сессии стримера
func (s *Streamer) ID() uuid.UUID {
	return s.id
}

// Worker возвращает воркер генерации
func (s *Streamer) Worker() *Worker {
	return s.worker
}

// Start запускает воркер в отдельной горутине
func (s *Streamer) Start(ctx context.Context) {
	s.logger.Info("🌍 Стример %s запущен", s.id)
	go s.worker.Run(ctx)
}

// Close закрывает обе очереди. Воркер завершится при следующей отправке.
// Кэш секторов не трогает, поэтому вызов безопасен параллельно с Advance.
func (s *Streamer) Close() {
	s.closeOnce.Do(func() {
		s.inbox.Close()
		s.needs.Close()
		s.logger.Info("🛑 Стример %s остановлен", s.id)
	})
}

// Advance выполняет один цикл потребителя: публикует позицию, разбирает
// сообщения воркера в пределах бюджета и вытесняет дальние секторы.
func (s *Streamer) Advance(pos mgl32.Vec3) AdvanceResult {
	_, span := s.tracer.Start(context.Background(), "streamer.advance")
	defer span.End()

	s.observer.Store(pos)

	var res AdvanceResult
	s.drain(&res)

	center := world.SectorAt(pos)
	res.Evicted = s.evict(center)

	span.SetAttributes(
		attribute.Int("messages", res.Processed),
		attribute.Int("meshed", res.Meshed),
		attribute.Int("evicted", res.Evicted),
		attribute.Int("resident", len(s.sectors)),
		attribute.Bool("budget_exhausted", res.BudgetExhausted),
	)
	s.metrics.observe(res, len(s.sectors))

	if (res.Processed > 0 || res.Evicted > 0) && s.logger.Enabled(logging.TRACE) {
		s.logger.Trace("Цикл: сообщений %d, need %d, новых %d, моделей %d, вытеснено %d, в кэше %d",
			res.Processed, res.NeedsSent, res.Inserted, res.Meshed, res.Evicted, len(s.sectors))
	}
	return res
}

// drain разбирает очередь воркера по порядку, пока есть сообщения и не исчерпан бюджет
func (s *Streamer) drain(res *AdvanceResult) {
	begin := s.now()
	defer func() { res.DrainTime = s.now().Sub(begin) }()

	for {
		msg, ok := s.inbox.TryRecv()
		if !ok {
			return
		}
		res.Processed++

		switch m := msg.(type) {
		case QueryMessage:
			if stop := s.handleQuery(m, res); stop {
				res.StoppedEarly = true
				return
			}
		case GeneratedMessage:
			s.handleGenerated(m, res)
		}

		if s.now().Sub(begin) > s.opts.DrainBudget {
			res.BudgetExhausted = true
			return
		}
	}
}

// handleQuery обрабатывает запрос воркера. Возвращает true, если разбор
// нужно прекратить до следующего цикла.
func (s *Streamer) handleQuery(q QueryMessage, res *AdvanceResult) bool {
	sector, ok := s.sectors[q.Coord]
	if !ok {
		// Ошибка значит, что очереди закрыты и воркер уже завершается
		if err := s.needs.Send(Need{Coord: q.Coord}); err == nil {
			res.NeedsSent++
		}
		return false
	}

	// Запросы идут от центра наружу: дальше только секторы вне радиуса отрисовки
	if !q.ShouldRender {
		return true
	}

	if !sector.Grid().NeedsRendering() || sector.HasModel() {
		res.Skipped++
		return false
	}

	adj, ok := world.NewAdjacentSectors(q.Coord, s.lookup)
	if !ok {
		res.Deferred++
		return false
	}

	// Сначала чтение соседей и построение, затем запись модели в целевой сектор
	geometry := s.mesher.BuildMesh(sector.Grid(), adj)
	sector.SetModel(world.NewModel(q.Coord, geometry))
	res.Meshed++
	return false
}

// handleGenerated добавляет сектор, если координата ещё не занята
func (s *Streamer) handleGenerated(g GeneratedMessage, res *AdvanceResult) {
	if _, exists := s.sectors[g.Coord]; exists {
		res.Duplicates++
		return
	}
	s.sectors[g.Coord] = world.NewSector(g.Grid)
	res.Inserted++
}

// evict удаляет секторы, удалённые от center на квадрат расстояния не меньше порога
func (s *Streamer) evict(center vec.Vec3) int {
	evicted := 0
	for coord := range s.sectors {
		if coord.DistanceSq(center) >= s.opts.EvictDistanceSq {
			delete(s.sectors, coord)
			evicted++
		}
	}
	return evicted
}

func (s *Streamer) lookup(coord vec.Vec3) (*world.Sector, bool) {
	sector, ok := s.sectors[coord]
	return sector, ok
}

// Len возвращает число секторов в кэше
func (s *Streamer) Len() int {
	return len(s.sectors)
}

// Sector возвращает сектор по координате
func (s *Streamer) Sector(coord vec.Vec3) (*world.Sector, bool) {
	return s.lookup(coord)
}

// Each обходит кэш; обход прекращается, если fn вернула false
func (s *Streamer) Each(fn func(coord vec.Vec3, sector *world.Sector) bool) {
	for coord, sector := range s.sectors {
		if !fn(coord, sector) {
			return
		}
	}
}

// Draw отправляет рендереру модели видимых секторов и возвращает их число
func (s *Streamer) Draw(frustum render.Frustum, r render.Renderer) int {
	planes := frustum.Planes()
	submitted := 0

	for coord, sector := range s.sectors {
		model := sector.Model()
		if model == nil || !render.SectorVisible(planes, coord) {
			continue
		}
		r.Submit(model.Transform, model.Geometry)
		submitted++
	}
	return submitted
}
