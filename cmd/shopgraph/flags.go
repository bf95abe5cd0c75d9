package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/config"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	Quiet        bool
	OutputFormat string
	ConfigFile   string

	URI      string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command, f *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	pf.BoolVarP(&f.Quiet, "quiet", "q", false, "Suppress non-essential output")
	pf.StringVarP(&f.OutputFormat, "output", "o", string(internal.FormatText), "Output format (text|json)")
	pf.StringVar(&f.ConfigFile, "config", "", "Path to config file (default: ~/.shopgraph/config.yaml)")

	pf.StringVar(&f.URI, "uri", "", "Neo4j connection URI, e.g. bolt://localhost:7687")
	pf.StringVar(&f.Username, "username", "", "Neo4j username")
	pf.StringVar(&f.Password, "password", "", "Neo4j password")
	pf.StringVar(&f.Database, "database", "", "Neo4j database name (default: server default)")
	pf.DurationVar(&f.Timeout, "timeout", config.DefaultTimeout, "Deadline for the whole command")
}

// Validate rejects unknown output formats and contradictory verbosity flags.
func (f *GlobalFlags) Validate() error {
	if f.OutputFormat != string(internal.FormatText) && f.OutputFormat != string(internal.FormatJSON) {
		return fmt.Errorf("invalid output format %q (must be text or json)", f.OutputFormat)
	}
	if f.Verbose && f.Quiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}
	if f.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive (got %s)", f.Timeout)
	}
	return nil
}

// Apply copies explicitly set connection flags over cfg.
func (f *GlobalFlags) Apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("uri") {
		cfg.Neo4j.URI = f.URI
	}
	if flags.Changed("username") {
		cfg.Neo4j.Username = f.Username
	}
	if flags.Changed("password") {
		cfg.Neo4j.Password = f.Password
	}
	if flags.Changed("database") {
		cfg.Neo4j.Database = f.Database
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.Timeout
	}

	switch {
	case f.Verbose:
		cfg.Logging.Level = "debug"
	case f.Quiet:
		cfg.Logging.Level = "error"
	}
}

// GetOutputFormat returns the parsed OutputFormat enum
func (f *GlobalFlags) GetOutputFormat() internal.OutputFormat {
	if f.OutputFormat == string(internal.FormatJSON) {
		return internal.FormatJSON
	}
	return internal.FormatText
}
