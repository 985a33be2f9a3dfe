package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"showroom/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [collection]",
		Short: "List collections, or the products of one collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listCollections(cmd)
			}
			return listProducts(ctx, cmd, args[0])
		},
	}
}

func listCollections(cmd *cobra.Command) error {
	rows := make([][]string, 0, len(catalog.Collections()))
	for _, collection := range catalog.Collections() {
		preset := catalog.PresetFor(collection)
		rows = append(rows, []string{
			string(collection),
			collection.DisplayName(),
			preset.Intro,
			strconv.Itoa(preset.ParticleCount),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Collection", "Name", "Intro", "Particles"},
		rows, 4,
	))
	return nil
}

func listProducts(ctx *commandContext, cmd *cobra.Command, name string) error {
	collection, err := catalog.ParseCollection(name)
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	client := catalog.NewClient(cfg, ctx.ensureLogger())
	refs, err := client.FetchCatalog(cmd.Context(), collection)
	if err != nil {
		return fmt.Errorf("fetch catalog for %s: %w", collection, err)
	}
	if len(refs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Collection %s has no products.\n", collection.DisplayName())
		return nil
	}

	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, []string{ref.ProductID, ref.Name, ref.ModelURL})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Product", "Name", "Model URL"}, rows))
	return nil
}
