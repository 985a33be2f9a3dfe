package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showroom/internal/fidelity"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the persistent verdict cache",
	}
	cmd.AddCommand(newCacheListCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	return cmd
}

func (c *commandContext) openVerdictStore() (*fidelity.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(cfg.Fidelity.CachePath)
	if path == "" {
		return nil, errors.New("no verdict cache configured; set fidelity.cache_path")
	}
	return fidelity.OpenStore(path)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached fidelity verdicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openVerdictStore()
			if err != nil {
				return err
			}
			defer store.Close()

			verdicts, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list verdicts: %w", err)
			}
			if len(verdicts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Verdict cache is empty.")
				return nil
			}

			rows := make([][]string, 0, len(verdicts))
			for _, stored := range verdicts {
				rows = append(rows, []string{
					stored.AssetURL,
					fmt.Sprintf("%.1f", stored.Score),
					yesNo(stored.Passed),
					stored.CachedAt.Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Asset", "Score", "Passed", "Checked"},
				rows, 2,
			))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached fidelity verdict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openVerdictStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear verdicts: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Verdict cache cleared.")
			return nil
		},
	}
}
