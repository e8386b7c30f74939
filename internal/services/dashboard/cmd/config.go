package main

import (
	"github.com/spf13/cobra"

	"github.com/LeonardoBeccarini/symbiont/internal/config"
)

// flagOverrides holds the command-line values that win over the environment.
type flagOverrides struct {
	addr    string
	dbPath  string
	verbose bool
}

func (f *flagOverrides) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (overrides SYMBIONT_HTTP_ADDR)")
	cmd.Flags().StringVar(&f.dbPath, "db", "", `sqlite cache path, "none" disables it (overrides SYMBIONT_DB_PATH)`)
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
}

func (f *flagOverrides) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTPAddr = f.addr
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = f.dbPath
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg, cfg.Validate()
}
