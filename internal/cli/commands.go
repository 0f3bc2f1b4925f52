package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <value>",
		Short: "Create a comparison with the initiator's value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[1])
			if err != nil {
				return err
			}
			id, err := opts.client().Create(cmd.Context(), args[0], v)
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), map[string]string{"id": id}, id)
		},
	}
}

func newSubmitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id> <value>",
		Short: "Submit the responder's value and complete the comparison",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[1])
			if err != nil {
				return err
			}
			if err := opts.client().Submit(cmd.Context(), args[0], v); err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), map[string]any{"ok": nil}, "ok")
		},
	}
}

func newResultCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Show the result of a completed comparison",
		Long: `Show the result of a completed comparison.

The result compares the initiator's value with the responder's: "less" means
the initiator's value was smaller.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Result(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), res, fmt.Sprintf("%s: %s", res.Name, res.Ordering))
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id>",
		Short: "Show whether a comparison is still open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.client().Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "open"
			if st.Finalized {
				state = "completed"
			}
			return opts.emit(cmd.OutOrStdout(), st,
				fmt.Sprintf("%s (%s) created %s", st.Name, state, st.CreatedAt.Format(time.RFC3339)))
		},
	}
}

type raceOptions struct {
	*RootOptions
	Workers int
}

func newRaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &raceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "race <id> <value>...",
		Short: "Submit several values at once and check that exactly one is accepted",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args)-1)
			for _, a := range args[1:] {
				v, err := parseValue(a)
				if err != nil {
					return err
				}
				values = append(values, v)
			}

			report := opts.client().Race(cmd.Context(), args[0], values, opts.Workers)
			text := fmt.Sprintf("submitted %d: accepted %d, rejected %d, failed %d",
				report.Submitted, report.Accepted, report.Rejected, report.Failed)
			if report.Winner != nil {
				text += fmt.Sprintf(", winner %g", *report.Winner)
			}
			out := map[string]any{
				"submitted": report.Submitted,
				"accepted":  report.Accepted,
				"rejected":  report.Rejected,
				"failed":    report.Failed,
				"winner":    report.Winner,
			}
			if err := opts.emit(cmd.OutOrStdout(), out, text); err != nil {
				return err
			}
			if report.Accepted != 1 {
				return fmt.Errorf("expected exactly one accepted submission, got %d", report.Accepted)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent requests (default: one per value)")
	return cmd
}
