package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/sector-stream/internal/camera"
	"github.com/annel0/sector-stream/internal/config"
	"github.com/annel0/sector-stream/internal/logging"
	"github.com/annel0/sector-stream/internal/mesh"
	"github.com/annel0/sector-stream/internal/observability"
	"github.com/annel0/sector-stream/internal/render"
	"github.com/annel0/sector-stream/internal/streaming"
	"github.com/annel0/sector-stream/internal/world/gen"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $STREAM_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := setupLogging(cfg.Logging); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🌍 Запуск стримера секторов (seed=%d, радиус=%d)", cfg.Streaming.Seed, cfg.Streaming.RenderRadius)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, observability.TelemetryOptions{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.Endpoint,
			Insecure:    cfg.Telemetry.Insecure,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetrics(cfg.Metrics.GetMetricsPort())
	}

	if err := run(ctx, cfg); err != nil {
		logging.Error("❌ Стример завершился с ошибкой: %v", err)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Ошибка остановки /metrics: %v", err)
		}
	}

	logging.Info("👋 Стример остановлен")
}

func setupLogging(lc config.LoggingConfig) error {
	consoleLevel, err := logging.ParseLevel(lc.ConsoleLevel)
	if err != nil {
		return err
	}
	fileLevel, err := logging.ParseLevel(lc.FileLevel)
	if err != nil {
		return err
	}

	logging.Configure(logging.Options{Dir: lc.Dir, ConsoleLevel: consoleLevel, FileLevel: fileLevel})
	return logging.InitDefaultLogger("streamer")
}

func startMetrics(port int) *http.Server {
	addr := fmt.Sprintf(":%d", port)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}

// run ведёт камеру над ландшафтом и крутит цикл Advance/Draw до сигнала
func run(ctx context.Context, cfg *config.Config) error {
	generator := gen.NewGenerator(cfg.Streaming.Seed)

	start := mgl32.Vec3{0, float32(generator.SurfaceHeight(0, 0) + 4), 0}
	cam := camera.New()
	cam.SetTranslation(start)

	opts := streaming.DefaultOptions()
	opts.Scan = streaming.ScanParams{
		RenderRadius:         cfg.Streaming.RenderRadius,
		VerticalRenderRadius: cfg.Streaming.VerticalRenderRadius,
		VerticalScan:         cfg.Streaming.ScanVertical,
	}
	opts.DrainBudget = cfg.Streaming.DrainBudget()
	opts.EvictDistanceSq = cfg.Streaming.EvictDistanceSq
	opts.ScanInterval = cfg.Streaming.ScanInterval()
	opts.StartPosition = start
	if cfg.Metrics.Enabled {
		opts.Registerer = prometheus.DefaultRegisterer
	}

	streamer := streaming.NewStreamer(generator, mesh.NewBuilder(), opts)
	defer streamer.Close()
	streamer.Start(ctx)

	renderer := render.NewCountingRenderer()
	stats, err := observability.NewProcessStats()
	if err != nil {
		logging.Warn("⚠️ Статистика процесса недоступна: %v", err)
	}

	var deadline <-chan time.Time
	if cfg.Driver.DurationSeconds > 0 {
		deadline = time.After(time.Duration(cfg.Driver.DurationSeconds) * time.Second)
	}

	statsEvery := time.Duration(cfg.Driver.StatsEverySecs) * time.Second
	if statsEvery <= 0 {
		statsEvery = 10 * time.Second
	}
	statsTicker := time.NewTicker(statsEvery)
	defer statsTicker.Stop()

	frame := cfg.Driver.FrameInterval()
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	dt := float32(frame.Seconds())
	for {
		select {
		case <-ctx.Done():
			logging.Info("🛑 Получен сигнал остановки")
			return nil
		case <-deadline:
			logging.Info("⏱️ Время работы истекло")
			return nil
		case <-statsTicker.C:
			logStats(streamer, renderer, stats)
		case <-ticker.C:
			pitch, yaw := cam.Rotation()
			cam.SetRotation(pitch, yaw+cfg.Driver.TurnRate*dt)
			cam.MoveDir(camera.Forward, cfg.Driver.Speed*dt)

			pos := cam.Translation()
			ground := float32(generator.SurfaceHeight(int(pos.X()), int(pos.Z())) + 4)
			cam.SetTranslation(mgl32.Vec3{pos.X(), ground, pos.Z()})

			streamer.Advance(cam.Translation())
			renderer.BeginFrame()
			streamer.Draw(cam.Frustum(), renderer)
		}
	}
}

func logStats(s *streaming.Streamer, r *render.CountingRenderer, ps *observability.ProcessStats) {
	rs := r.Stats()
	ws := s.Worker().Stats()

	logging.Info("📊 Секторов: %d, моделей в кадре: %d, кадров: %d, сгенерировано: %d, циклов воркера: %d",
		s.Len(), rs.LastFrame, rs.Frames, ws.Generated.Load(), ws.Cycles.Load())

	if ps == nil {
		return
	}
	rss, err := ps.RSSMegabytes()
	if err != nil {
		logging.Debug("RSS недоступен: %v", err)
		return
	}
	logging.Info("💾 Память: RSS %.1f MB, куча %.1f MB, аптайм %s", rss, observability.HeapMegabytes(), ps.Uptime())
}
