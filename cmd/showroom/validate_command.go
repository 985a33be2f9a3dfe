package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showroom/internal/fidelity"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model-url>",
		Short: "Score a model against the fidelity gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var opts []fidelity.Option
			if cache := strings.TrimSpace(cfg.Fidelity.CachePath); cache != "" {
				store, err := fidelity.OpenStore(cache)
				if err != nil {
					return fmt.Errorf("open verdict cache: %w", err)
				}
				defer store.Close()
				opts = append(opts, fidelity.WithStore(store))
			}

			validator := fidelity.NewValidator(cfg, ctx.ensureLogger(), opts...)
			verdict := validator.Validate(cmd.Context(), args[0])

			rows := [][]string{
				{"Asset", verdict.AssetURL},
				{"Score", fmt.Sprintf("%.1f", verdict.Score)},
				{"Gate", fmt.Sprintf("%.1f", fidelity.MinimumFidelityScore)},
				{"Passed", yesNo(verdict.Passed)},
			}
			if reason, ok := verdict.Report["error"].(string); ok && reason != "" {
				rows = append(rows, []string{"Error", reason})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))

			if !verdict.Passed {
				return fmt.Errorf("model failed the fidelity gate (%.1f < %.1f)", verdict.Score, fidelity.MinimumFidelityScore)
			}
			return nil
		},
	}
}
