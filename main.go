package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.bug.st/serial"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"aqusens.io/nora/asrslink/alert"
	"aqusens.io/nora/asrslink/analyzer"
	"aqusens.io/nora/asrslink/console"
	"aqusens.io/nora/asrslink/dispatch"
	"aqusens.io/nora/asrslink/link"
	"aqusens.io/nora/asrslink/metrics"
	"aqusens.io/nora/asrslink/pump"
	"aqusens.io/nora/asrslink/session"
	"aqusens.io/nora/asrslink/telemetry"
	"aqusens.io/nora/asrslink/tide"
)

func main() {
	configPath := registerFlags(flag.CommandLine)
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configPath), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(config)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, interrupt := context.WithCancel(sigCtx)

	err = run(ctx, interrupt, config, logger)
	interrupt()
	stop()
	if err != nil {
		logger.Error("Topside link stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Topside link stopped")
	logger.Sync()
}

// registerFlags declares the command-line flags on fs and returns the config path flag.
func registerFlags(fs *flag.FlagSet) *string {
	fs.String("serial-port", "", "Serial port of the sampler (empty autodetects)")
	fs.Int("baud-rate", 115200, "Baud rate for serial communication")
	fs.String("data-dir", "D:/Data/Raw", "Base directory for session directories")
	fs.String("command-file", "command_file.txt", "Analyzer command file")
	fs.String("response-file", "response_file.txt", "Analyzer response file")
	fs.String("temperature-csv", "SampleTemps.csv", "Temperature summary log")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("log-file", "", "Additional JSON log file")
	fs.String("metrics-address", "", "Listen address for /healthz, /status and /metrics (empty disables)")
	fs.Bool("no-console", false, "Disable the interactive operator console")
	return fs.String("config", "asrslink.yaml", "Path to the YAML configuration file")
}

// initLogger builds a console logger and, if configured, a JSON file logger
// at the configured level.
func initLogger(cfg *Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.LogLevel {
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

	// stderr keeps the log apart from console replies on stdout
	cores := []zapcore.Core{zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)}

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
		if err == nil {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			))
		} else {
			fmt.Fprintf(os.Stderr, "Unable to open log file %s: %v\n", cfg.LogFile, err)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}

func newNotifier(cfg *Config, logger *zap.Logger) alert.Notifier {
	logNotifier := alert.LogNotifier{Logger: logger}
	if cfg.SMTPHost == "" {
		logger.Info("No SMTP host configured, alerts are only logged")
		return logNotifier
	}
	n, err := alert.NewSMTPNotifier(alert.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		Recipients: cfg.SMTPRecipients,
	})
	if err != nil {
		logger.Warn("SMTP notifier disabled, alerts are only logged", zap.Error(err))
		return logNotifier
	}
	return n
}

func run(ctx context.Context, interrupt func(), config *Config, logger *zap.Logger) error {
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return err
	}

	m := metrics.New()

	linkConfig, err := link.NewConfigBuilder().
		WithDialer(link.SerialDialer{
			PortName: config.SerialPort,
			Mode:     &serial.Mode{BaudRate: config.BaudRate},
			Settle:   config.SerialSettle,
		}).
		WithRetryInterval(config.ReconnectInterval).
		WithLogger(logger.With(zap.String("component", "link"))).
		WithOnReconnect(m.Reconnected).
		Build()
	if err != nil {
		return fmt.Errorf("link config: %w", err)
	}
	sup, err := link.NewSupervisor(linkConfig)
	if err != nil {
		return err
	}

	logger.Info("Connecting to sampler", zap.String("port", config.SerialPort))
	if err := sup.Connect(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	defer sup.Close()

	channel := analyzer.New(config.CommandFile, config.ResponseFile,
		analyzer.WithTimeout(config.AckTimeout),
		analyzer.WithPollInterval(config.AckPollInterval),
		analyzer.WithAttempts(config.AckAttempts),
		analyzer.WithLogger(logger.With(zap.String("component", "analyzer"))),
		analyzer.WithObserver(m),
	)

	reporter := alert.NewReporter(
		newNotifier(config, logger.With(zap.String("component", "notifier"))),
		logger.With(zap.String("component", "alert")),
		alert.WithObserver(m),
	)
	defer reporter.Wait()

	pumps := pump.New(channel, sup, logger.With(zap.String("component", "pump")))

	runner, err := session.NewRunner(session.Config{
		BaseDir:      config.DataDir,
		Cadence:      config.SampleCadence,
		PumpSettle:   config.PumpSettle,
		ReplyTimeout: config.TemperatureReplyTimeout,
	}, session.Dependencies{
		Analyzer:  channel,
		Pump:      pumps,
		Serial:    sup,
		Reporter:  reporter,
		Telemetry: telemetry.NewCSVWriter(config.TemperatureCSV),
		Logger:    logger.With(zap.String("component", "session")),
		Observer:  m,
	})
	if err != nil {
		return err
	}

	cache := &dispatch.StatusCache{}
	deps := dispatch.Dependencies{
		Serial:   sup,
		Pump:     pumps,
		Sessions: runner,
		Tide:     tide.New(config.TideURL, nil, logger.With(zap.String("component", "tide"))),
		Reporter: reporter,
		Logger:   logger.With(zap.String("component", "dispatch")),
		Observer: m,
	}

	var out io.Writer = os.Stdout
	var shell *console.Shell
	if config.Console {
		queue := console.NewQueue(console.DefaultQueueSize)
		shell = console.New(queue, logger.With(zap.String("component", "console")), interrupt)
		deps.Queue = queue
		out = shell
	}
	deps.Operator = dispatch.NewOperator(sup, out, cache, config.OperatorReplyTimeout,
		logger.With(zap.String("component", "operator")))

	d, err := dispatch.New(dispatch.Config{
		DurationTimeout: config.DurationTimeout,
		Location:        loc,
	}, deps)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.Run(ctx) })

	if shell != nil {
		g.Go(func() error { return shell.Run(ctx) })
	}

	if config.MetricsAddress != "" {
		httpServer := &http.Server{
			Addr: config.MetricsAddress,
			Handler: &Server{
				Logger:   logger.With(zap.String("component", "server")),
				Link:     sup,
				Sessions: runner,
				Status:   cache,
				Metrics:  m.Handler(),
			},
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
