package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round commands",
	}

	cmd.AddCommand(newRoundStartCmd())
	cmd.AddCommand(newRoundGetCmd())
	cmd.AddCommand(newRoundSelectCmd())
	cmd.AddCommand(newRoundAbortCmd())
	cmd.AddCommand(newRoundAbandonCmd())
	cmd.AddCommand(newRoundClaimCmd())

	return cmd
}

func newRoundStartCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new round, replacing any round in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round

			req := map[string]string{}
			if category != "" {
				req["category_id"] = category
			}
			if err := client.Post("/api/v1/rounds", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category ID (random if omitted)")

	return cmd
}

func newRoundGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the round grid and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round

			if err := client.Get(fmt.Sprintf("/api/v1/rounds/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoundSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id> <row,col> <row,col>...",
		Short: "Drag across cells and release",
		Long: `Presses the first cell, extends the selection over the rest in order and
releases it. The selection must run in a straight line from the first cell
without gaps, forwards or backwards along the word.

Example:
  wordhunt round select 1b2c 3,4 3,5 3,6`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cells, err := parseCells(args[1:])
			if err != nil {
				return err
			}

			base := fmt.Sprintf("/api/v1/rounds/%s", id)
			var result SelectionResult

			if err := client.Post(base+"/press", cells[0], &result); err != nil {
				return err
			}
			for _, c := range cells[1:] {
				if err := client.Post(base+"/extend", c, &result); err != nil {
					return err
				}
				if result.Outcome == "aborted" {
					NewOutput(cfg.Output).Print(result)
					return fmt.Errorf("cell %d,%d is not in line with the selection", c.Row, c.Col)
				}
			}
			if err := client.Post(base+"/release", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoundAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abort <id>",
		Short: "Drop the current selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SelectionResult

			if err := client.Post(fmt.Sprintf("/api/v1/rounds/%s/abort", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoundAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "End the round early",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round

			if err := client.Delete(fmt.Sprintf("/api/v1/rounds/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoundClaimCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "claim <id>",
		Short: "Credit a finished round's score to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Claim

			req := map[string]string{}
			if address != "" {
				req["address"] = address
			}
			if err := client.Post(fmt.Sprintf("/api/v1/rounds/%s/claim", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Account address (defaults to the player's address)")

	return cmd
}

// parseCells parses "row,col" arguments
func parseCells(args []string) ([]Cell, error) {
	cells := make([]Cell, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid cell %q: expected row,col", arg)
		}
		row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid row in %q: %w", arg, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid column in %q: %w", arg, err)
		}
		cells = append(cells, Cell{Row: row, Col: col})
	}
	return cells, nil
}
