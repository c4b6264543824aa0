/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli is the coreerr command line: inspect the error type
// catalogue and check status-mapping rules files.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"dirpx.dev/coreerr/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type configKey struct{}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "coreerr",
		Short: "Inspect error types and their HTTP/gRPC status mapping",
		Long: `coreerr prints the built-in error type catalogue and explains how a
rules file maps (type, reason) pairs to HTTP statuses and gRPC codes.

Rules are read from --config, or coreerr.yaml in the working directory.
Environment variables prefixed with COREERR_ override file values.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.Level())
			if cfg.File != "" {
				log.Debug().Str("file", cfg.File).Int("rules", len(cfg.Mapper.Rules)).Msg("loaded rules")
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(log.WithContext(ctx))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "rules file (default: ./coreerr.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	rootCmd.AddCommand(newTypesCommand())
	rootCmd.AddCommand(newExplainCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
}

func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{}
}
