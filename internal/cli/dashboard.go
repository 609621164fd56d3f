package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/services"
)

func (a *app) loadDashboard(cmd *cobra.Command) (*services.Dashboard, error) {
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	return a.deps.DashboardService.Load(cmd.Context(), sess)
}

func printStatus(w io.Writer, s models.StudentStatus) {
	printKV(w,
		[2]string{"Application date", orDash(s.ApplicationDate)},
		[2]string{"Payment", yesNo(s.HasPaid)},
		[2]string{"Payment date", orDash(s.PaymentDate)},
		[2]string{"Choices submitted", yesNo(s.HasSubmittedChoices)},
		[2]string{"Room allocated", yesNo(s.RoomAllocated)},
	)
}

func printRoom(w io.Writer, r models.RoomInfo) {
	if !r.Allocated() {
		fmt.Fprintln(w, "No room has been allocated yet.")
		return
	}
	printKV(w,
		[2]string{"Hostel", r.HostelName},
		[2]string{"Block", orDash(r.BlockName)},
		[2]string{"Room", r.RoomName},
	)
}

func statusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your application status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDashboard(cmd)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), d.Status)
			return nil
		},
	}
}

func roomCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "room",
		Short: "Show your room allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDashboard(cmd)
			if err != nil {
				return err
			}
			printRoom(cmd.OutOrStdout(), d.Room)
			for _, w := range d.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}
}

func dashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Overview of your accommodation application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDashboard(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Welcome, %s (%s)\n\n", d.Student.Name, d.Student.StudentID)

			fmt.Fprintf(out, "Progress: %d of %d steps completed\n", d.Completed(), len(d.Steps))
			for _, s := range d.Steps {
				fmt.Fprintf(out, "  %s %s\n", check(s.Completed), s.Label)
			}

			fmt.Fprintln(out, "\nApplication")
			printStatus(out, d.Status)

			fmt.Fprintln(out, "\nRoom")
			printRoom(out, d.Room)

			if !d.Status.HasPaid {
				fmt.Fprintf(out, "\nAmount due: %s\n", naira(d.Fees.Total()))
			}

			fmt.Fprintln(out)
			printGate(out, d.Gate)

			for _, w := range d.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}
}
