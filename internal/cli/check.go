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

package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrInvalidRules is returned by check when the rules do not build.
var ErrInvalidRules = errors.New("rules are invalid")

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a rules file",
		Long: `Validate the rules file: type names, gRPC code names, HTTP status ranges
and reason prefixes. Every problem is reported, not just the first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			log := zerolog.Ctx(cmd.Context())

			if _, err := cfg.BuildMapper(); err != nil {
				log.Debug().Err(err).Msg("build failed")
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n%v\n", source(cfg.File), err)
				return ErrInvalidRules
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%d rules)\n", source(cfg.File), len(cfg.Mapper.Rules))
			return nil
		},
	}
}

func source(file string) string {
	if file == "" {
		return "<defaults>"
	}
	return file
}
