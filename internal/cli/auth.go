package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/app/services"
)

// formField binds a register flag to the question asked when it is missing
type formField struct {
	label  string
	value  *string
	secret bool
}

func registrationFields(form *dto.RegisterForm) map[services.RegistrationStep][]formField {
	return map[services.RegistrationStep][]formField{
		services.StepAccount: {
			{label: "Full name", value: &form.Name},
			{label: "Student ID", value: &form.StudentID},
			{label: "Password", value: &form.Password, secret: true},
			{label: "Confirm password", value: &form.ConfirmPassword, secret: true},
		},
		services.StepAcademic: {
			{label: "Faculty", value: &form.Faculty},
			{label: "Department", value: &form.Department},
			{label: "Level (100-500)", value: &form.Level},
			{label: "Campus", value: &form.Campus},
		},
		services.StepPersonal: {
			{label: "Gender (Male/Female)", value: &form.Gender},
		},
	}
}

func registerCommand(a *app) *cobra.Command {
	var form dto.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student account",
		Long: `Create a student account. Any detail not given as a flag is asked for,
one step at a time. Passwords are always read from the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			out := cmd.OutOrStdout()
			fields := registrationFields(&form)

			for _, step := range services.RegistrationSteps {
				fmt.Fprintf(cmd.ErrOrStderr(), "Step %d of %d: %s\n", int(step), len(services.RegistrationSteps), step)
				for _, f := range fields[step] {
					if *f.value != "" {
						continue
					}
					var err error
					if f.secret {
						*f.value, err = p.Password(f.label)
					} else {
						*f.value, err = p.Line(f.label)
					}
					if err != nil {
						return err
					}
				}
				if err := a.deps.AuthService.ValidateStep(&form, step); err != nil {
					return err
				}
			}

			sess, err := a.deps.AuthService.Register(cmd.Context(), form)
			if err != nil {
				return err
			}

			if sess.Valid() {
				fmt.Fprintf(out, "Registration successful. Welcome, %s!\n", sess.Student.Name)
				fmt.Fprintf(out, "Next, pay your accommodation fee: run `%s pay`.\n", programName)
				return nil
			}
			fmt.Fprintf(out, "Registration successful. Run `%s login` to sign in.\n", programName)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "full name")
	f.StringVar(&form.StudentID, "student-id", "", "registration number, e.g. U20CS1001")
	f.StringVar(&form.Faculty, "faculty", "", "faculty")
	f.StringVar(&form.Department, "department", "", "department")
	f.StringVar(&form.Level, "level", "", "level (100, 200, 300, 400 or 500)")
	f.StringVar(&form.Campus, "campus", "", "campus")
	f.StringVar(&form.StudentType, "student-type", "", "student type, e.g. undergraduate")
	f.StringVar(&form.Gender, "gender", "", "Male or Female")
	f.StringVar(&form.AccessibilityNeeds, "accessibility-needs", "", "accessibility requirements, if any")

	return cmd
}

func loginCommand(a *app) *cobra.Command {
	var studentID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your student ID and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)

			var err error
			if studentID == "" {
				if studentID, err = p.Line("Student ID"); err != nil {
					return err
				}
			}
			password, err := p.Password("Password")
			if err != nil {
				return err
			}

			sess, err := a.deps.AuthService.Login(cmd.Context(), studentID, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", sess.Student.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student-id", "", "registration number")
	return cmd
}

func logoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.deps.AuthService.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"profile"},
		Short:   "Show the logged-in student's profile",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			sess, err = a.deps.AuthService.RefreshProfile(cmd.Context(), sess)
			if err != nil {
				return err
			}

			s := sess.Student
			printKV(cmd.OutOrStdout(),
				[2]string{"Name", s.Name},
				[2]string{"Student ID", s.StudentID},
				[2]string{"Faculty", orDash(s.Faculty)},
				[2]string{"Department", orDash(s.Department)},
				[2]string{"Level", orDash(s.Level)},
				[2]string{"Campus", orDash(s.Campus)},
				[2]string{"Gender", orDash(string(s.Gender))},
			)
			return nil
		},
	}
}
