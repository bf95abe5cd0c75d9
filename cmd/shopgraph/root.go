package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/config"
	"github.com/uakotik/DB-lab5/internal/observability"
	"github.com/uakotik/DB-lab5/internal/store"
)

const shutdownTimeout = 5 * time.Second

// storeOpener connects a Store for the loaded configuration.
type storeOpener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, error)

// openNeo4jStore opens a traced Neo4j-backed Store.
func openNeo4jStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	return store.Open(ctx, cfg.Neo4j.ToGraphConfig(),
		store.WithLogger(logger),
		store.WithStrictRelationships(cfg.Neo4j.StrictRelationships),
	)
}

// app carries the state shared by one CLI invocation.
type app struct {
	flags  GlobalFlags
	open   storeOpener
	cfg    *config.Config
	logger *slog.Logger
	out    internal.Formatter

	store    *store.Store
	cleanups []func(context.Context) error
}

func newApp(open storeOpener) *app {
	return &app{
		open:   open,
		logger: slog.Default(),
	}
}

// run executes args and returns the process exit code.
func (a *app) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); cerr != nil && err == nil {
		a.logger.Warn("shutdown incomplete", "error", cerr)
	}
	return internal.HandleError(root, err)
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shopgraph",
		Short: "shopgraph - e-commerce analytics over a Neo4j graph",
		Long: `shopgraph stores items, customers and orders in Neo4j and answers
purchase and browsing questions over the BOUGHT, CONTAINS and VIEW relationships.

Connection settings come from ~/.shopgraph/config.yaml, SHOPGRAPH_NEO4J_* environment
variables (a .env file in the working directory is loaded first) and the flags below.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	RegisterGlobalFlags(root, &a.flags)

	root.AddCommand(
		a.newSeedCmd(),
		a.newReportCmd(),
		a.newItemCmd(),
		a.newCustomerCmd(),
		a.newOrderCmd(),
		a.newLinkCmd(),
		a.newQueryCmd(),
		a.newClearCmd(),
		a.newSchemaCmd(),
		a.newStatusCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)
	return root
}

// setup runs before every command: it validates flags, loads the configuration,
// builds the logger and telemetry providers and bounds the command with --timeout.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.flags.Validate(); err != nil {
		return internal.WrapError(internal.ExitError, "invalid flags", err)
	}
	a.out = internal.NewFormatter(a.flags.GetOutputFormat(), cmd.OutOrStdout())

	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to load .env", err)
	}

	path := a.configPath()
	cfg, err := config.NewConfigLoader(config.NewValidator()).LoadWithDefaults(path)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to load config from "+path, err)
	}
	a.flags.Apply(cmd, cfg)
	a.cfg = cfg

	logger, closer, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to set up logging", err)
	}
	a.logger = logger
	a.cleanups = append(a.cleanups, func(context.Context) error { return closer.Close() })

	ctx := cmd.Context()
	tp, err := observability.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to set up tracing", err)
	}
	a.cleanups = append(a.cleanups, func(ctx context.Context) error { return observability.ShutdownTracing(ctx, tp) })

	metrics, err := observability.InitMetrics(ctx, cfg.Metrics, logger)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to set up metrics", err)
	}
	a.cleanups = append(a.cleanups, metrics.Shutdown)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	a.cleanups = append(a.cleanups, func(context.Context) error { cancel(); return nil })
	cmd.SetContext(ctx)

	logger.Debug("configuration loaded", "path", path, "uri", cfg.Neo4j.URI, "timeout", cfg.Timeout)
	return nil
}

func (a *app) configPath() string {
	if a.flags.ConfigFile != "" {
		return a.flags.ConfigFile
	}
	return config.DefaultConfigPath(config.DefaultHomeDir())
}

// Store returns the connected Store, opening it on first use.
func (a *app) Store(ctx context.Context) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	s, err := a.open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, internal.WrapError(internal.ExitDatabaseError, "failed to connect to "+a.cfg.Neo4j.URI, err)
	}
	a.store = s
	a.cleanups = append(a.cleanups, s.Close)
	return s, nil
}

// teardown releases resources in reverse order of acquisition.
func (a *app) teardown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.cleanups = nil
	a.store = nil
	return errors.Join(errs...)
}

// withStore adapts a command body that needs the Store to cobra's RunE.
func (a *app) withStore(fn func(cmd *cobra.Command, s *store.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.Store(cmd.Context())
		if err != nil {
			return err
		}
		return fn(cmd, s, args)
	}
}
