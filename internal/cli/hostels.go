package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

func hostelsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostels",
		Short: "List the hostels offered to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			overview, err := a.deps.HostelService.Overview(cmd.Context(), sess)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(overview) == 0 {
				fmt.Fprintf(out, "No hostels are offered for %s students on %s campus.\n", sess.Student.Gender, sess.Student.Campus)
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "#\tID\tNAME\tCAMPUS\tROOMS\tFREE BEDS")
			for i, o := range overview {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d/%d\n",
					i+1, o.Hostel.ID, o.Hostel.Name, o.Hostel.Campus,
					o.Stats.TotalRooms, o.Stats.AvailableBeds, o.Stats.TotalBeds)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(hostelRoomsCommand(a))
	cmd.AddCommand(hostelStatsCommand(a))
	return cmd
}

func hostelRoomsCommand(a *app) *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "rooms <hostel>",
		Short: "List a hostel's rooms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostel, err := a.lookupHostel(cmd, args[0])
			if err != nil {
				return err
			}
			rooms, err := a.deps.HostelService.Rooms(cmd.Context(), hostel.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", hostel.Name)
			tw := newTable(out)
			fmt.Fprintln(tw, "BLOCK\tROOM\tOCCUPIED\tCAPACITY")
			for _, r := range rooms {
				if availableOnly && !r.Available() {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.BlockName, r.Name, r.Occupied, r.Capacity)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&availableOnly, "available", false, "only show rooms with a free bed")
	return cmd
}

func hostelStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <hostel>",
		Short: "Show a hostel's occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostel, err := a.lookupHostel(cmd, args[0])
			if err != nil {
				return err
			}
			stats, err := a.deps.HostelService.Stats(cmd.Context(), hostel.ID)
			if err != nil {
				return err
			}

			printKV(cmd.OutOrStdout(),
				[2]string{"Hostel", hostel.Name},
				[2]string{"Rooms", strconv.Itoa(stats.TotalRooms)},
				[2]string{"Beds", strconv.Itoa(stats.TotalBeds)},
				[2]string{"Occupied", strconv.Itoa(stats.OccupiedBeds)},
				[2]string{"Available", strconv.Itoa(stats.AvailableBeds)},
			)
			return nil
		},
	}
}

// lookupHostel resolves a hostel argument against the student's catalogue
func (a *app) lookupHostel(cmd *cobra.Command, arg string) (models.Hostel, error) {
	sess, err := a.session()
	if err != nil {
		return models.Hostel{}, err
	}
	hostels, err := a.deps.HostelService.List(cmd.Context(), sess)
	if err != nil {
		return models.Hostel{}, err
	}
	return resolveHostel(hostels, arg)
}

// resolveHostel accepts a 1-based list position, an ID or a name
func resolveHostel(hostels []models.Hostel, arg string) (models.Hostel, error) {
	arg = strings.TrimSpace(arg)

	for _, h := range hostels {
		if h.ID == arg {
			return h, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(hostels) {
		return hostels[n-1], nil
	}
	for _, h := range hostels {
		if strings.EqualFold(h.Name, arg) {
			return h, nil
		}
	}
	return models.Hostel{}, apperrors.NewCustomError(apperrors.ErrHostelNotOffered, fmt.Sprintf("no hostel %q is offered to you", arg))
}
