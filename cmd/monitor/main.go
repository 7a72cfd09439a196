// Package main is the entry point for the factory production monitor.
// It loads configuration, sets up the logger, wires the shared state
// containers and periodic actors, and runs in the foreground until
// interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/counters"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/monitor"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/notify"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sensor"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/shift"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/stops"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sysmetrics"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/transmit"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/web"
)

var (
	// version is set at build time via -ldflags.
	version = "2.1.0"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("factory-monitor %s\n", version)
		os.Exit(0)
	}

	// Optional .env file for SMTP credentials and FM_* overrides.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = config.Locate()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting production monitor",
		zap.String("version", version),
		zap.String("machine_id", cfg.MachineID),
		zap.String("config", path))

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	runMonitor(ctx, cfg, path, logger)
	logger.Info("Program stopped")
}

// runMonitor wires all components and runs the periodic actors.
// It blocks until the context is cancelled.
func runMonitor(ctx context.Context, cfg *config.Config, configPath string, logger *zap.Logger) {
	store := config.NewStore(cfg)

	if cfg.Simulation {
		logger.Info("Running in simulation mode")
	} else {
		logger.Info("Running with GPIO sensors")
	}
	windows := cfg.ShiftWindows()
	for _, w := range windows {
		logger.Info("Shift configured", zap.String("name", w.Name))
	}
	logger.Info("Current shift", zap.String("shift", shift.Resolve(time.Now(), windows)))

	ctr := counters.NewStore(cfg.CountersFile, logger)
	good, reject := ctr.Load()
	logger.Info("Loaded production counters",
		zap.Uint64("qtBon", good),
		zap.Uint64("qtRejet", reject))

	mailer := notify.NewMailer(store, logger)
	machine := stops.New(mailer, logger)

	var sens sensor.Sensor
	if cfg.Simulation {
		sens = sensor.NewSimulator(rand.New(rand.NewSource(time.Now().UnixNano())))
	} else {
		lines, err := sensor.OpenLines()
		if err != nil {
			logger.Fatal("Failed to open GPIO lines", zap.Error(err))
		}
		sens = lines
	}
	defer sens.Close()

	history := transmit.NewTracker()
	sender := transmit.New(store, history, rand.New(rand.NewSource(time.Now().UnixNano())), logger)

	metrics := sysmetrics.NewProvider(logger)
	assembler := snapshot.NewAssembler(store, version, ctr, machine, metrics, history, sens, logger)

	holder := monitor.NewHolder()
	runner := monitor.New(store, assembler, sender, ctr, sens, machine, holder, logger)

	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, web.Deps{
			Holder:     holder,
			Metrics:    metrics,
			Stops:      machine,
			Counters:   ctr,
			Config:     store,
			ConfigPath: configPath,
			Logger:     logger,
		})
		go func() {
			logger.Info("HTTP API listening", zap.String("addr", cfg.HTTP.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed", zap.Error(err))
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	runner.Run(ctx)
}

// initLogger creates a zap logger from the logging configuration.
// It writes human-readable output to the console and structured JSON to a
// rotating log file when one is configured.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.Backups,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotating),
			level,
		)
		cores = append(cores, fileCore)
	}

	return zap.New(zapcore.NewTee(cores...)).With(
		zap.String("run_id", uuid.NewString()),
	)
}
