package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appModels "github.com/yigit/hostelportal/internal/app/models"
	appRepos "github.com/yigit/hostelportal/internal/app/repositories"
	"github.com/yigit/hostelportal/internal/pkg/auth"
)

// DemoPassword is shared by every demo account
const DemoPassword = "demo123"

// demoStudent is one account per eligibility outcome
type demoStudent struct {
	student   appModels.Student
	eligible  bool
	paid      bool
	submitted []string // hostel IDs in rank order
}

var demoStudents = []demoStudent{
	{
		student:  appModels.Student{Name: "Musa Bello", StudentID: "U00DEMO01", Faculty: "Engineering", Department: "Civil Engineering", Level: "100", Campus: "Main", Gender: appModels.GenderMale},
		eligible: true,
	},
	{
		student:  appModels.Student{Name: "Aisha Yusuf", StudentID: "U00DEMO02", Faculty: "Science", Department: "Mathematics", Level: "200", Campus: "Main", Gender: appModels.GenderFemale},
		eligible: true,
		paid:     true,
	},
	{
		student:   appModels.Student{Name: "Ibrahim Sani", StudentID: "U00DEMO03", Faculty: "Science", Department: "Physics", Level: "300", Campus: "Main", Gender: appModels.GenderMale},
		eligible:  true,
		paid:      true,
		submitted: []string{"1", "3"},
	},
	{
		student: appModels.Student{Name: "Grace Audu", StudentID: "U00DEMO04", Faculty: "Arts", Department: "History", Level: "400", Campus: "Main", Gender: appModels.GenderFemale},
		paid:    true,
	},
}

// CreateDemoStudents adds one account for each point of the application so
// every screen can be tried without registering. Existing accounts are left
// alone. Failures are collected and returned together.
func CreateDemoStudents(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo students...")
	var finalErr error

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("error hashing demo password: %w", err)
	}

	now := time.Now()
	for _, demo := range demoStudents {
		if _, err := repos.StudentRepository.FindByStudentID(ctx, demo.student.StudentID); err == nil {
			lgr.Debug().Str("studentId", demo.student.StudentID).Msg("Demo student already exists, skipping creation")
			continue
		}

		rec := appRepos.StudentRecord{
			Student:      demo.student,
			PasswordHash: hash,
			Eligible:     demo.eligible,
			HasPaid:      demo.paid,
		}
		rec.Student.ID = uuid.New().String()
		if demo.paid {
			rec.PaymentDate = now
		}

		if len(demo.submitted) > 0 {
			rec.Submitted = true
			rec.ApplicationDate = now
			copy(rec.Choices[:], demo.submitted)

			room, err := repos.HostelRepository.ReserveBed(ctx, demo.submitted[0])
			if err != nil {
				lgr.Error().Err(err).Str("studentId", demo.student.StudentID).Msg("Error reserving bed for demo student")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			rec.Allocation = &appRepos.Allocation{HostelID: demo.submitted[0], RoomID: room.ID}
		}

		if err := repos.StudentRepository.Create(ctx, rec); err != nil {
			lgr.Error().Err(err).Str("studentId", demo.student.StudentID).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("studentId", demo.student.StudentID).Msg("Demo student created")
	}

	lgr.Info().Msg("Demo student check/creation finished.")
	return finalErr
}
