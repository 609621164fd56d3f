package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/services"
)

func payCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pay",
		Short: "Show the accommodation fee and how to pay it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fees := a.deps.PaymentService.Fees()
			out := cmd.OutOrStdout()

			printKV(out,
				[2]string{"Accommodation fee", naira(fees.AccommodationFee)},
				[2]string{"Service fee", naira(fees.ServiceFee)},
				[2]string{"Total", naira(fees.Total())},
			)
			fmt.Fprintln(out, "\nPay by bank transfer, card, bank deposit or USSD and keep your receipt.")
			fmt.Fprintf(out, "Then run `%s verify-payment` with the transaction reference and receipt.\n", programName)
			return nil
		},
	}
}

func verifyPaymentCommand(a *app) *cobra.Command {
	var form dto.PaymentEvidenceForm

	cmd := &cobra.Command{
		Use:   "verify-payment",
		Short: "Submit payment evidence",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("amount") {
				form.Amount = a.deps.PaymentService.Fees().Total()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}

			evidence, err := a.deps.PaymentService.VerifyPayment(cmd.Context(), sess, form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Payment verified successfully!")
			fmt.Fprintf(out, "Reference %s, %s on %s.\n", evidence.TransactionRef, naira(evidence.Amount), evidence.PaymentDate.Format("2 Jan 2006"))
			fmt.Fprintln(out, nextStep(services.GateEligible))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.TransactionRef, "ref", "", "transaction reference")
	f.StringVar(&form.PaymentDate, "date", time.Now().Format("2006-01-02"), "payment date (YYYY-MM-DD)")
	f.Int64Var(&form.Amount, "amount", 0, "amount paid in naira (defaults to the total fee)")
	f.StringVar(&form.PaymentMethod, "method", string(models.PaymentBankTransfer), "bank_transfer, card, bank_deposit or ussd")
	f.StringVar(&form.ReceiptPath, "receipt", "", "path to the receipt (JPG, PNG or PDF)")

	return cmd
}
