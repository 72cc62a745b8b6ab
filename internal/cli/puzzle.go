package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPuzzleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Puzzle training commands",
	}

	cmd.AddCommand(newPuzzleStartCmd())
	cmd.AddCommand(newPuzzleShowCmd())
	cmd.AddCommand(newPuzzleGuessCmd())
	cmd.AddCommand(newPuzzleOpponentCmd())
	cmd.AddCommand(newPuzzleHintCmd())
	cmd.AddCommand(newPuzzleHintMoveCmd())
	cmd.AddCommand(newPuzzleSolutionCmd())
	cmd.AddCommand(newPuzzleResetCmd())
	cmd.AddCommand(newPuzzleDeleteCmd())

	return cmd
}

func newPuzzleStartCmd() *cobra.Command {
	var puzzleID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a puzzle session (random unless --puzzle is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req map[string]string
			if puzzleID != "" {
				req = map[string]string{"puzzle_id": puzzleID}
			}

			var result Session
			if err := client.Post("/api/v1/puzzles/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&puzzleID, "puzzle", "", "Specific puzzle ID to train on")

	return cmd
}

func newPuzzleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the current session state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/puzzles/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <id> <move>",
		Short: "Guess the next solution move, e.g. e2e4",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"move": args[1]}
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/v1/puzzles/sessions/%s/guess", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleOpponentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "opponent <id>",
		Short: "Play the opponent's scripted reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/puzzles/sessions/%s/opponent", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint <id>",
		Short: "Reveal which piece moves next (counts against your rating)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Hint

			if err := client.Post(fmt.Sprintf("/api/v1/puzzles/sessions/%s/hint", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleHintMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint-move <id>",
		Short: "Reveal the full next move (counts against your rating)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HintMove

			if err := client.Post(fmt.Sprintf("/api/v1/puzzles/sessions/%s/hint-move", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleSolutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solution <id>",
		Short: "Play the next solution move for you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/puzzles/sessions/%s/solution-step", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Restart the session's puzzle from the beginning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/puzzles/sessions/%s/reset", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a puzzle session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/puzzles/sessions/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session deleted")
			return nil
		},
	}
}
