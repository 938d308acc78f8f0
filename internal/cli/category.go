package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Category commands",
	}

	cmd.AddCommand(newCategoryListCmd())
	cmd.AddCommand(newCategoryShowCmd())
	cmd.AddCommand(newCategoryGenerateCmd())

	return cmd
}

func newCategoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Category

			if err := client.Get("/api/v1/categories", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newCategoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a category and its words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Category

			if err := client.Get(fmt.Sprintf("/api/v1/categories/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newCategoryGenerateCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new category around a theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Category

			if err := client.Post("/api/v1/categories/generate", map[string]string{"theme": theme}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Theme for the word list (required)")
	_ = cmd.MarkFlagRequired("theme")

	return cmd
}
