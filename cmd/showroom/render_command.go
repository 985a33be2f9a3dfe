package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showroom/internal/analytics"
	"showroom/internal/assets"
	"showroom/internal/catalog"
	"showroom/internal/fidelity"
	"showroom/internal/registry"
	"showroom/internal/render"
	"showroom/internal/scene"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "render <collection>",
		Short: "Mount a headless scene session and report what settled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			var opts []fidelity.Option
			if cache := strings.TrimSpace(cfg.Fidelity.CachePath); cache != "" {
				store, err := fidelity.OpenStore(cache)
				if err != nil {
					return fmt.Errorf("open verdict cache: %w", err)
				}
				defer store.Close()
				opts = append(opts, fidelity.WithStore(store))
			}

			deps := registry.Deps{
				Backend: render.NewHeadless(),
				NewValidator: func() scene.Validator {
					return fidelity.NewValidator(cfg, logger, opts...)
				},
				Loader:    assets.NewLoader(cfg, logger),
				Catalog:   catalog.NewClient(cfg, logger),
				Analytics: analytics.NewService(cfg, logger),
				Logger:    logger,
			}

			reg, err := registry.New(cfg, deps, logger)
			if err != nil {
				return err
			}
			defer reg.Close()

			instance, err := reg.Init(cmd.Context(), "cli", registry.EmbedConfig{
				Collection: args[0],
				Width:      width,
				Height:     height,
			})
			if err != nil {
				return err
			}
			manager := instance.Manager()
			defer manager.Dispose()

			select {
			case <-manager.Populated():
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}

			entities := manager.Entities()
			rows := make([][]string, 0, len(entities))
			for _, entity := range entities {
				rows = append(rows, []string{entity.ProductID, string(entity.Kind)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Product", "Kind"}, rows))

			if inspector, ok := manager.Inspect(); ok {
				nodeWidth, nodeHeight := inspector.Viewport()
				fmt.Fprintf(cmd.OutOrStdout(), "Surface %dx%d, %d nodes, %d frames rendered\n",
					nodeWidth, nodeHeight, len(inspector.Snapshot()), inspector.FrameCount())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Viewport width (default 1280)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height (default 720)")
	return cmd
}
