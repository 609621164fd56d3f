package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/services"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

// nextStep tells the student what to do about a closed gate
func nextStep(d services.GateDecision) string {
	switch d {
	case services.GateEligible:
		return fmt.Sprintf("Run `%s select` to choose your hostels.", programName)
	case services.GateUnpaid:
		return fmt.Sprintf("Run `%s pay` to see the fees, then `%s verify-payment`.", programName, programName)
	case services.GateAlreadySubmitted:
		return fmt.Sprintf("Run `%s dashboard` to follow your allocation.", programName)
	default:
		return ""
	}
}

func printGate(w io.Writer, d services.GateDecision) {
	fmt.Fprintln(w, d.Message())
	if next := nextStep(d); next != "" {
		fmt.Fprintln(w, next)
	}
}

// retryable reports whether submitting again could succeed. Rejections from
// the backend and an expired session are final for this run.
func retryable(err error) bool {
	return errors.Is(err, apperrors.ErrServiceUnavailable)
}

func eligibilityCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eligibility",
		Short: "Check whether you can select hostels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			decision, err := a.deps.EligibilityService.Check(cmd.Context(), sess.StudentID())
			if err != nil {
				return err
			}
			printGate(cmd.OutOrStdout(), decision)
			return nil
		},
	}
}

func rankLabel(r models.Rank) string {
	switch r {
	case models.RankFirst:
		return "1st choice"
	case models.RankSecond:
		return "2nd choice"
	case models.RankThird:
		return "3rd choice"
	default:
		return r.String()
	}
}

func printChoices(w io.Writer, choices services.Choices) {
	tw := newTable(w)
	for _, c := range choices {
		name := "(none)"
		if c.Filled() {
			name = c.Hostel.Name
		}
		fmt.Fprintf(tw, "  %s:\t%s\n", rankLabel(c.Rank), name)
	}
	_ = tw.Flush()
}

func selectCommand(a *app) *cobra.Command {
	var (
		picks   [models.RankCount]string
		confirm bool
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose up to three hostels in order of preference",
		Long: `Choose up to three hostels in order of preference and submit them.
Hostels can be given by list number, ID or name. Without flags you are asked
for each choice. Choices cannot be changed once submitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p := newPrompter(cmd)

			sess, err := a.session()
			if err != nil {
				return err
			}

			wf, decision, err := a.deps.SelectionService.Start(cmd.Context(), sess)
			if err != nil {
				return err
			}
			if wf == nil {
				printGate(out, decision)
				return nil
			}

			hostels := wf.Hostels()
			if len(hostels) == 0 {
				fmt.Fprintln(out, "No hostels are available for you at the moment.")
				return nil
			}
			fmt.Fprintln(out, "Available hostels:")
			for i, h := range hostels {
				fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, h.Name, h.Campus)
			}

			interactive := picks == [models.RankCount]string{}
			for _, rank := range models.Ranks {
				pick := picks[rank]
				if interactive {
					if pick, err = p.Line(rankLabel(rank) + " (number, ID or name; blank to skip)"); err != nil {
						return err
					}
				}
				if pick == "" {
					continue
				}
				hostel, err := resolveHostel(hostels, pick)
				if err != nil {
					return err
				}
				if err := wf.Assign(rank, hostel.ID); err != nil {
					return err
				}
			}

			if err := wf.Review(); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nReview your choices:")
			printChoices(out, wf.State().Choices())
			fmt.Fprintln(out, "Once submitted, your choices cannot be changed.")

			if !confirm {
				ok, err := p.Confirm("Submit these choices?")
				if err != nil {
					return err
				}
				if !ok {
					if err := wf.Cancel(); err != nil {
						return err
					}
					fmt.Fprintln(out, "Nothing was submitted.")
					return nil
				}
			}

			for {
				err := wf.Confirm(cmd.Context())
				if err == nil {
					break
				}
				if errors.Is(err, services.ErrSubmissionInFlight) {
					return err
				}

				fmt.Fprintln(out, "Submission failed. Your selections are unchanged.")
				if confirm || !retryable(err) {
					return err
				}
				fmt.Fprintf(out, "Reason: %v\n", err)
				retry, perr := p.Confirm("Try again?")
				if perr != nil {
					return perr
				}
				if !retry {
					return err
				}
			}

			if st, ok := wf.State().(services.Success); ok {
				fmt.Fprintln(out, st.Message)
			}
			fmt.Fprintln(out, nextStep(services.GateAlreadySubmitted))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&picks[models.RankFirst], "first", "", "first choice")
	f.StringVar(&picks[models.RankSecond], "second", "", "second choice")
	f.StringVar(&picks[models.RankThird], "third", "", "third choice")
	f.BoolVarP(&confirm, "yes", "y", false, "submit without asking for confirmation")

	return cmd
}
