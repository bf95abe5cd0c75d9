package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/uakotik/DB-lab5/cmd/shopgraph/internal"
	"github.com/uakotik/DB-lab5/internal/config"
	"gopkg.in/yaml.v3"
)

const redactedPassword = "********"

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the shopgraph configuration file",
		Long: `The config command writes and displays shopgraph configuration.

Configuration is stored in YAML format at ~/.shopgraph/config.yaml by default.
Values of the form ${VAR} are expanded from the environment when the file is loaded.`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: `Init writes the defaults, merged with any SHOPGRAPH_NEO4J_* variables and
connection flags, to the config file. An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return internal.NewCLIError(internal.ExitConfigError, "config file already exists at "+path+" (use --force to overwrite)")
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return internal.WrapError(internal.ExitConfigError, "failed to inspect "+path, err)
			}

			if err := config.WriteConfig(path, a.cfg); err != nil {
				return internal.WrapError(internal.ExitConfigError, "failed to write config", err)
			}
			return a.out.PrintSuccess("wrote " + path)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long:  `Show prints the configuration after defaults, file, environment and flags are merged. The password is masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *a.cfg
			if cfg.Neo4j.Password != "" {
				cfg.Neo4j.Password = redactedPassword
			}

			if a.flags.GetOutputFormat() == internal.FormatJSON {
				return a.out.PrintJSON(cfg)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
