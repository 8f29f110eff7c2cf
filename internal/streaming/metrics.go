package streaming

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sector_stream"

// Metrics содержит Prometheus-метрики стримера и его воркера
type Metrics struct {
	resident        prometheus.Gauge
	processed       prometheus.Counter
	inserted        prometheus.Counter
	duplicates      prometheus.Counter
	meshed          prometheus.Counter
	deferred        prometheus.Counter
	evicted         prometheus.Counter
	needs           prometheus.Counter
	budgetExhausted prometheus.Counter
	drainDuration   prometheus.Histogram

	workerCycles     prometheus.CounterFunc
	workerQueries    prometheus.CounterFunc
	workerGenerated  prometheus.CounterFunc
	workerDuplicates prometheus.CounterFunc
}

// NewMetrics создаёт метрики и регистрирует их в reg, если он задан.
// Счётчики воркера читаются из его атомарной статистики при сборе.
func NewMetrics(reg prometheus.Registerer, session string, stats *WorkerStats) *Metrics {
	labels := prometheus.Labels{"session": session}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	counterFunc := func(name, help string, read func() float64) prometheus.CounterFunc {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "worker",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, read)
	}

	m := &Metrics{
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "sectors_resident",
			Help:        "Количество секторов в кэше.",
			ConstLabels: labels,
		}),
		processed:       counter("messages_processed_total", "Сообщений воркера, обработанных потребителем."),
		inserted:        counter("sectors_inserted_total", "Секторов, добавленных в кэш."),
		duplicates:      counter("sectors_duplicate_total", "Повторно сгенерированных секторов, отброшенных кэшем."),
		meshed:          counter("sectors_meshed_total", "Секторов, для которых построена модель."),
		deferred:        counter("sectors_deferred_total", "Построений модели, отложенных из-за отсутствующих соседей."),
		evicted:         counter("sectors_evicted_total", "Секторов, вытесненных по расстоянию."),
		needs:           counter("needs_sent_total", "Запросов на генерацию, отправленных воркеру."),
		budgetExhausted: counter("drain_budget_exhausted_total", "Циклов, в которых разбор очереди упёрся в бюджет времени."),
		drainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   metricsNamespace,
			Name:        "drain_duration_seconds",
			Help:        "Длительность разбора очереди воркера за цикл.",
			ConstLabels: labels,
			Buckets:     []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		workerCycles: counterFunc("cycles_total", "Завершённых циклов воркера.", func() float64 {
			return float64(stats.Cycles.Load())
		}),
		workerQueries: counterFunc("queries_total", "Отправленных запросов о секторах.", func() float64 {
			return float64(stats.Queries.Load())
		}),
		workerGenerated: counterFunc("generated_total", "Сгенерированных секторов.", func() float64 {
			return float64(stats.Generated.Load())
		}),
		workerDuplicates: counterFunc("duplicate_needs_total", "Повторных запросов генерации в одном проходе.", func() float64 {
			return float64(stats.Duplicates.Load())
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.resident, m.processed, m.inserted, m.duplicates, m.meshed, m.deferred,
			m.evicted, m.needs, m.budgetExhausted, m.drainDuration,
			m.workerCycles, m.workerQueries, m.workerGenerated, m.workerDuplicates,
		)
	}
	return m
}

// observe переносит итог цикла в метрики
func (m *Metrics) observe(r AdvanceResult, resident int) {
	m.resident.Set(float64(resident))
	m.processed.Add(float64(r.Processed))
	m.inserted.Add(float64(r.Inserted))
	m.duplicates.Add(float64(r.Duplicates))
	m.meshed.Add(float64(r.Meshed))
	m.deferred.Add(float64(r.Deferred))
	m.evicted.Add(float64(r.Evicted))
	m.needs.Add(float64(r.NeedsSent))
	if r.BudgetExhausted {
		m.budgetExhausted.Inc()
	}
	m.drainDuration.Observe(r.DrainTime.Seconds())
}
