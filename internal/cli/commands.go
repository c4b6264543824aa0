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
	"fmt"
	"strconv"

	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/reason"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the built-in error types with their resolved statuses",
		Example: `  # Catalogue with the default mapping
  coreerr types

  # Catalogue as mapped by a rules file
  coreerr types --config rules.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := getConfig(cmd.Context()).BuildMapper()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Type", "HTTP", "Error code", "gRPC", "Message"})
			for _, d := range errortype.All() {
				st := m.Status(d.Type, reason.Empty)
				t.AppendRow(table.Row{
					string(d.Type),
					strconv.Itoa(st.HTTP),
					d.Phrase(),
					st.GRPC.String(),
					d.Message,
				})
			}
			t.Render()
			return nil
		},
	}
}

func newExplainCommand() *cobra.Command {
	var typeFlag, reasonFlag string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show how a (type, reason) pair resolves to HTTP and gRPC",
		Example: `  coreerr explain --type conflict
  coreerr explain --type unavailable --reason payment.gateway.timeout --config rules.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := errortype.Parse(typeFlag)
			if err != nil {
				return err
			}
			r, err := reason.Parse(reasonFlag)
			if err != nil {
				return fmt.Errorf("reason %q: %w", reasonFlag, err)
			}
			m, err := getConfig(cmd.Context()).BuildMapper()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.Explain(t, r))
			return err
		},
	}
	cmd.Flags().StringVar(&typeFlag, "type", "", "error type, e.g. not_found or NOT_FOUND")
	cmd.Flags().StringVar(&reasonFlag, "reason", "", "optional reason, e.g. coupon.use.expired")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
