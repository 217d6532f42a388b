// Package cli implements the homescreen command line interface over the
// client SDK packages.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/config"
	"github.com/Astreocclu/pool-visualizer/pkg/api"
	"github.com/Astreocclu/pool-visualizer/pkg/diagnostics"
	"github.com/Astreocclu/pool-visualizer/pkg/logger"
	"github.com/Astreocclu/pool-visualizer/pkg/output"
	"github.com/Astreocclu/pool-visualizer/pkg/pipeline"
	"github.com/Astreocclu/pool-visualizer/pkg/polling"
	"github.com/Astreocclu/pool-visualizer/pkg/session"
	"github.com/Astreocclu/pool-visualizer/pkg/store"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
	"github.com/Astreocclu/pool-visualizer/pkg/tracing"
)

// Version is set at build time.
var Version = "dev"

// app holds the wired SDK components shared by every command.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	registry  *tenants.Registry
	session   *session.Manager
	api       *api.Client
	store     *store.Store
	submitter *pipeline.Submitter
	poller    *polling.Controller
	reporter  *diagnostics.Reporter

	tracerShutdown func(context.Context) error
}

var (
	flagTenant string
	flagOutput string
	flagQuery  string

	application *app
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "homescreen",
	Short: "Client for the AI home-improvement visualization service",
	Long: `homescreen drives the multi-tenant visualization wizard from the
terminal: configure a pool, window, or roof project, upload a photo, submit
it for AI generation, and watch the result come in.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		application, err = newApp(flagTenant)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.shutdown()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTenant, "tenant", "t", tenants.DefaultTenantID, "tenant vertical (pools, windows, roofs)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression applied to json/yaml output")
}

func newApp(tenantID string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty, cfg.AppName)

	a := &app{cfg: cfg, logger: log}

	if cfg.TracingEnabled {
		shutdown, err := tracing.Init(context.Background(), cfg.AppName, tracing.OTLPConfig{
			Endpoint: cfg.OTLPEndpoint,
			Protocol: cfg.OTLPProtocol,
			Insecure: cfg.OTLPInsecure,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			log.WithError(err).Warnf("Tracing disabled: exporter setup failed")
		} else {
			a.tracerShutdown = shutdown
		}
	}

	a.registry = tenants.NewRegistry(log)
	if cfg.TenantOverlayPath != "" {
		if err := a.registry.LoadOverlay(cfg.TenantOverlayPath); err != nil {
			return nil, err
		}
	}

	statePersister, sessionPersister, err := newPersisters(cfg, tenantID, log)
	if err != nil {
		return nil, err
	}

	a.session = session.NewManager(sessionPersister, log)
	a.api = api.NewClient(api.Config{
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.RequestTimeout,
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
	}, a.session, log)
	a.session.SetAPI(a.api)

	a.store = store.New(a.registry.Config(tenantID).ID, statePersister, log)
	a.submitter = pipeline.NewSubmitter(a.api, a.registry, log)

	a.poller = polling.NewController(a.api, log)
	a.poller.SetInterval(cfg.PollInterval)

	a.reporter = diagnostics.NewReporter(cfg.DebugErrorsURL, Version, log)

	return a, nil
}

func newPersisters(cfg *config.Config, tenantID string, log logger.Logger) (store.Persister, store.Persister, error) {
	if cfg.StateBackend == "redis" {
		redisCfg := store.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
		statePersister, err := store.NewRedisPersister(redisCfg, "homescreen:state:"+tenantID, log)
		if err != nil {
			return nil, nil, err
		}
		sessionPersister, err := store.NewRedisPersister(redisCfg, "homescreen:session", log)
		if err != nil {
			return nil, nil, err
		}
		return statePersister, sessionPersister, nil
	}

	statePersister, err := store.NewFilePersister("state-" + tenantID + ".json")
	if err != nil {
		return nil, nil, err
	}
	sessionPersister, err := store.NewFilePersister("session.json")
	if err != nil {
		return nil, nil, err
	}
	return statePersister, sessionPersister, nil
}

func (a *app) shutdown() {
	a.store.Flush()
	a.reporter.Flush()
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.WithError(err).Debugf("Tracer shutdown failed")
		}
	}
	_ = a.logger.Sync()
}

// renderer builds the output renderer from the global flags.
func (a *app) renderer() (*output.Renderer, error) {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(format, flagQuery), nil
}

// print renders and writes a command result.
func (a *app) print(cmd *cobra.Command, v any) error {
	renderer, err := a.renderer()
	if err != nil {
		return err
	}
	text, err := renderer.Render(v)
	if err != nil {
		return err
	}
	cmd.Println(text)
	return nil
}
