package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"sales-forecast/internal/analytics"
	"sales-forecast/internal/cache"
	"sales-forecast/internal/config"
	"sales-forecast/internal/dataset"
	"sales-forecast/internal/logging"
	"sales-forecast/internal/metrics"
	"sales-forecast/internal/models"
	"sales-forecast/internal/output"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrMissingPath не передан путь к CSV
var ErrMissingPath = errors.New("CSV file path is required")

const publishTimeout = 5 * time.Second

// Publisher получатель готового прогноза
type Publisher interface {
	StoreForecast(ctx context.Context, year int, forecast models.PublishedForecast) error
	Close() error
}

// App зависимости одного запуска
type App struct {
	cfg          config.Config
	logger       *zap.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
	runID        string
	loadConfig   func() config.Config
	newPublisher func(ctx context.Context, cfg config.Config) (Publisher, error)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	return NewApp().Execute(args, stdout, stderr)
}

// NewApp создает приложение с реальными часами и Redis.
// Конфигурация и логгер создаются только после проверки аргументов.
func NewApp() *App {
	return &App{
		logger:     zap.NewNop(),
		metrics:    metrics.New(),
		now:        time.Now,
		runID:      uuid.NewString(),
		loadConfig: config.Load,
		newPublisher: func(ctx context.Context, cfg config.Config) (Publisher, error) {
			rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ResultTTL)
			if err != nil {
				return nil, err
			}
			return rc, nil
		},
	}
}

// setup читает конфигурацию и строит логгер. Неверный уровень логирования
// не мешает прогнозу: логгер остается выключенным.
func (a *App) setup() {
	a.cfg = a.loadConfig()

	logger, err := logging.New(a.cfg.LogLevel, a.cfg.LogFile)
	if err != nil {
		logger = zap.NewNop()
	}
	a.logger = logger.With(zap.String("run_id", a.runID))
	a.logger.Debug("config loaded",
		zap.Bool("metrics_file", a.cfg.MetricsFile != ""),
		zap.Bool("redis", a.cfg.RedisAddr != ""),
	)
}

// Execute запускает команду и возвращает код выхода.
// Прогноз пишется в stdout, ошибка - объектом {"error": ...} в stderr.
func (a *App) Execute(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	// cobra подставляет os.Args при nil
	if args == nil {
		args = []string{}
	}

	cmd := a.newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())

	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RunsTotal.WithLabelValues(status).Inc()
	a.metrics.RunDuration.Observe(time.Since(start).Seconds())
	a.flushMetrics()

	if err != nil {
		a.logger.Error("forecast failed", zap.Error(err))
	}
	_ = a.logger.Sync()

	if err != nil {
		_ = output.WriteError(stderr, err)
		return 1
	}
	return 0
}

func (a *App) newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast <csv-path>",
		Short: "Forecast monthly sales until the end of the current year",
		Long: `forecast reads a ';'-separated monthly statistics file with the columns
Mois, Nombre d'alertes, Nombre de pannes and Nombre de ventes, fits a linear
trend of sales over the month index, alerts and failures, and prints the
predicted sales for the remaining months of the current year as JSON.`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return ErrMissingPath
			case len(args) > 1:
				return fmt.Errorf("expected a single CSV file path, got %d arguments", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		// cobra вызывает PersistentPreRunE после проверки Args
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], stdout)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func (a *App) run(ctx context.Context, path string, stdout io.Writer) error {
	records, err := dataset.Load(path)
	if err != nil {
		return err
	}
	a.logger.Info("dataset loaded", zap.String("path", path))

	now := a.now()
	result, err := analytics.Forecast(records, now)
	if err != nil {
		return err
	}

	a.metrics.RowsLoaded.Set(float64(result.Rows))
	a.metrics.MonthsPredicted.Set(float64(len(result.Predictions)))
	a.metrics.ObserveModel(result.Model.Intercept, result.Model.Coefficients)
	a.logger.Info("model fitted",
		zap.Int("rows", result.Rows),
		zap.Float64("intercept", result.Model.Intercept),
		zap.Float64s("coefficients", result.Model.Coefficients),
		zap.Int("rank", result.Model.Rank),
		zap.Time("last_month", result.LastDate),
	)

	if err := output.WriteForecast(stdout, result.Predictions); err != nil {
		return fmt.Errorf("failed to write forecast: %w", err)
	}
	a.logger.Info("forecast produced", zap.Int("months", len(result.Predictions)))

	a.publish(ctx, now, path, result.Predictions)
	return nil
}

// publish отправляет прогноз в Redis, если он настроен. Ошибки только логируются.
func (a *App) publish(ctx context.Context, now time.Time, source string, predictions []models.Prediction) {
	if a.cfg.RedisAddr == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	pub, err := a.newPublisher(ctx, a.cfg)
	if err != nil {
		a.metrics.PublishTotal.WithLabelValues("error").Inc()
		a.logger.Warn("publisher unavailable", zap.String("addr", a.cfg.RedisAddr), zap.Error(err))
		return
	}
	defer pub.Close()

	err = pub.StoreForecast(ctx, now.Year(), models.PublishedForecast{
		RunID:       a.runID,
		GeneratedAt: now,
		Source:      source,
		Predictions: predictions,
	})
	if err != nil {
		a.metrics.PublishTotal.WithLabelValues("error").Inc()
		a.logger.Warn("failed to publish forecast", zap.Error(err))
		return
	}
	a.metrics.PublishTotal.WithLabelValues("success").Inc()
	a.logger.Debug("forecast published", zap.Int("year", now.Year()))
}

func (a *App) flushMetrics() {
	if a.cfg.MetricsFile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.Warn("failed to write metrics", zap.String("path", a.cfg.MetricsFile), zap.Error(err))
	}
}
