// PulseLink Core - subscriber, user and device registry.
//
// This is the main entry point. It loads configuration, opens the
// relational store, wires the repositories and the credential service,
// and serves the HTTP API until an interrupt or SIGTERM arrives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	_ "github.com/nerrad567/pulselink-core/migrations"

	"github.com/nerrad567/pulselink-core/internal/api"
	"github.com/nerrad567/pulselink-core/internal/assignment"
	"github.com/nerrad567/pulselink-core/internal/auth"
	"github.com/nerrad567/pulselink-core/internal/device"
	"github.com/nerrad567/pulselink-core/internal/events"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/config"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/logging"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/pulselink-core/internal/role"
	"github.com/nerrad567/pulselink-core/internal/subscriber"
	"github.com/nerrad567/pulselink-core/internal/user"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errVersionRequested stops run after printing build information.
var errVersionRequested = errors.New("version requested")

// options holds the parsed command line.
type options struct {
	configPath  string
	envFile     string
	reset       bool
	showVersion bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errVersionRequested) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line into options.
func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("pulselink", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to config file (default $PULSELINK_CONFIG or "+config.DefaultPath+")")
	fs.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")
	fs.BoolVar(&opts.reset, "reset", false, "delete all rows and reset id counters after migrating (development only)")
	fs.BoolVar(&opts.showVersion, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// run is the actual application logic, separated from main for testability.
// It returns nil on clean shutdown.
func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(out, "pulselink %s (commit %s, built %s)\n", version, commit, date)
		return errVersionRequested
	}

	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting PulseLink Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}

	configPath := config.ResolvePath(opts.configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(database.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		DSN:          cfg.Database.DSN,
		WALMode:      cfg.Database.WALMode,
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	db.SetLogger(log)
	log.Info("database connected", "driver", db.Dialect().String())

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	if opts.reset {
		log.Warn("resetting all tables")
		if resetErr := db.ResetTables(ctx); resetErr != nil {
			return fmt.Errorf("resetting tables: %w", resetErr)
		}
	}

	roles := role.NewSQLRepository(db.DB)
	subscribers := subscriber.NewSQLRepository(db.DB, db.Dialect())
	users := user.NewSQLRepository(db.DB, subscribers, roles)
	devices := device.NewSQLRepository(db.DB, subscribers)
	assignments := assignment.NewSQLRepository(db.DB, users, devices)

	tokens := auth.NewTokenIssuer(cfg.Security.JWT.Secret, auth.DefaultTokenTTL)
	authService := auth.NewService(users, tokens, log)

	health := map[string]api.HealthChecker{"database": db}

	notifier, mqttClient, err := startEvents(cfg.MQTT, log)
	if err != nil {
		return err
	}
	if mqttClient != nil {
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		health["mqtt"] = mqttClient
	}

	var metrics api.RequestRecorder
	if cfg.InfluxDB.Enabled {
		influxClient, connErr := influxdb.Connect(cfg.InfluxDB)
		if connErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", connErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		metrics = influxClient
		health["influxdb"] = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	server, err := api.New(api.Deps{
		Config:      cfg.API,
		Logger:      log,
		Roles:       roles,
		Subscribers: subscribers,
		Users:       users,
		Devices:     devices,
		Assignments: assignments,
		Auth:        authService,
		Events:      notifier,
		Metrics:     metrics,
		Health:      health,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// API server, InfluxDB, MQTT, database.
	return nil
}

// startEvents connects the change-event publisher when MQTT is enabled.
// With MQTT disabled the returned notifier is a no-op and the client is nil.
func startEvents(cfg config.MQTTConfig, log *logging.Logger) (*events.Notifier, *mqtt.Client, error) {
	if !cfg.Enabled {
		log.Info("MQTT disabled, change events will not be published")
		return events.NewNotifier(nil, mqtt.NewTopics(cfg.TopicPrefix), 0, log), nil, nil
	}

	client, err := mqtt.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to MQTT: %w", err)
	}
	client.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.Broker.Host, cfg.Broker.Port),
		"client_id", cfg.Broker.ClientID,
	)

	return events.NewNotifier(client, client.Topics(), client.QoS(), log), client, nil
}
