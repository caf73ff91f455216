package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/config"
	"github.com/abhisek/leerkit/internal/generate"
	"github.com/abhisek/leerkit/internal/llm"
	"github.com/abhisek/leerkit/internal/logging"
	"github.com/abhisek/leerkit/internal/metrics"
	"github.com/abhisek/leerkit/internal/store"
	"github.com/abhisek/leerkit/internal/wizard"
)

// env holds the dependencies shared by every command that touches the
// wizard session.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	machine *wizard.Machine
	metrics *metrics.Metrics
	gen     *generate.Service
}

// setup loads config, opens the store, restores the session and builds
// the generation service. The LLM provider is optional: without
// credentials every generation fails with a configuration error.
func setup(cmd *cobra.Command, quiet bool) (*env, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	newLogger := logging.New
	if quiet {
		newLogger = logging.NewQuiet
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	m := wizard.New(st.Sessions(),
		wizard.WithSessionKey(cfg.Session.Key),
		wizard.WithLogger(logger))
	m.Rehydrate(ctx)

	met := metrics.New()
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger, met.Instrument)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			st.Close()
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
		if !quiet {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		}
		logger.Warn("LLM provider not configured", zap.Error(err))
		provider = nil
	}

	gcfg := generate.DefaultConfig()
	gcfg.StructuredOutput = cfg.LLM.StructuredOutput

	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		machine: m,
		metrics: met,
		gen:     generate.NewService(provider, gcfg, logger),
	}, nil
}

func (e *env) Close() {
	_ = e.logger.Sync()
	e.store.Close()
}
