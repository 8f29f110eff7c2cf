package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации стримера.
// Незаданные поля получают значения по умолчанию.
type Config struct {
	Streaming StreamingConfig `yaml:"streaming"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Driver    DriverConfig    `yaml:"driver"`
}

// scanRadius совпадает с крайним смещением порядка обхода по X и Z
const scanRadius = 3

type StreamingConfig struct {
	Seed                 int64 `yaml:"seed"`
	RenderRadius         int32 `yaml:"render_radius"`
	VerticalRenderRadius int32 `yaml:"vertical_render_radius"`
	ScanVertical         int32 `yaml:"scan_vertical"`
	EvictDistanceSq      int64 `yaml:"evict_distance_sq"`
	DrainBudgetMs        int   `yaml:"drain_budget_ms"`
	ScanIntervalMs       int   `yaml:"scan_interval_ms"`
}

type LoggingConfig struct {
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
	Dir          string `yaml:"dir"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type DriverConfig struct {
	FPS             int     `yaml:"fps"`
	Speed           float32 `yaml:"speed"`               // Блоков в секунду
	TurnRate        float32 `yaml:"turn_rate"`           // Радиан в секунду
	DurationSeconds int     `yaml:"duration_seconds"`    // 0 значит до сигнала
	StatsEverySecs  int     `yaml:"stats_every_seconds"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Streaming: StreamingConfig{
			Seed:                 42,
			RenderRadius:         2,
			VerticalRenderRadius: 1,
			ScanVertical:         2,
			EvictDistanceSq:      280,
			DrainBudgetMs:        50,
			ScanIntervalMs:       3000,
		},
		Logging: LoggingConfig{
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
			Dir:          "logs",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "sector-stream",
			SampleRatio: 1,
		},
		Driver: DriverConfig{
			FPS:            60,
			Speed:          12,
			TurnRate:       0.1,
			StatsEverySecs: 10,
		},
	}
}

// GetMetricsPort возвращает порт Prometheus с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "STREAM_METRICS_PORT", 2112)
}

// DrainBudget возвращает бюджет разбора очереди
func (s *StreamingConfig) DrainBudget() time.Duration {
	return time.Duration(s.DrainBudgetMs) * time.Millisecond
}

// ScanInterval возвращает паузу воркера между циклами
func (s *StreamingConfig) ScanInterval() time.Duration {
	return time.Duration(s.ScanIntervalMs) * time.Millisecond
}

// FrameInterval возвращает длительность одного кадра
func (d *DriverConfig) FrameInterval() time.Duration {
	if d.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(d.FPS)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	s := c.Streaming
	if s.RenderRadius < 0 || s.VerticalRenderRadius < 0 || s.ScanVertical < 0 {
		return fmt.Errorf("streaming: radii must be non-negative")
	}
	if s.RenderRadius >= scanRadius {
		return fmt.Errorf("streaming: render_radius %d leaves no generated neighbors (scan radius is %d)", s.RenderRadius, scanRadius)
	}
	if s.VerticalRenderRadius >= s.ScanVertical {
		return fmt.Errorf("streaming: vertical_render_radius %d must be below scan_vertical %d", s.VerticalRenderRadius, s.ScanVertical)
	}
	// Порог должен покрывать всю опрашиваемую окрестность, иначе внешние
	// секторы вытесняются каждый кадр и соседей для построения моделей не хватает
	footprint := int64(scanRadius*scanRadius*2) + int64(s.ScanVertical)*int64(s.ScanVertical)
	if s.EvictDistanceSq <= footprint {
		return fmt.Errorf("streaming: evict_distance_sq %d must exceed scan footprint %d", s.EvictDistanceSq, footprint)
	}
	if s.DrainBudgetMs <= 0 || s.ScanIntervalMs <= 0 {
		return fmt.Errorf("streaming: drain_budget_ms and scan_interval_ms must be positive")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry: sample_ratio %v out of [0, 1]", c.Telemetry.SampleRatio)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV STREAM_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("STREAM_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан, используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
