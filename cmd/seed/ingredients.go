package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"foodgram-backend/internal/domains/ingredient"
	"foodgram-backend/pkg/container"
)

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "Import ingredients from a JSON file",
	Long: `Reads [{"name": "...", "measurement_unit": "..."}] and bulk loads it with COPY.
Does nothing when the ingredients table already has rows.`,
	RunE: runIngredients,
}

var ingredientsFile string

func init() {
	ingredientsCmd.Flags().StringVar(&ingredientsFile, "file", "data/ingredients.json", "Path to the ingredients JSON file")
}

func runIngredients(cmd *cobra.Command, args []string) error {
	var items []ingredient.Ingredient
	if err := readJSON(ingredientsFile, &items); err != nil {
		return err
	}

	return withContainer(func(c *container.Container) error {
		n, err := c.IngredientService.Import(cmd.Context(), items)
		if err != nil {
			return fmt.Errorf("failed to import ingredients: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d ingredients\n", n, len(items))
		return nil
	})
}
