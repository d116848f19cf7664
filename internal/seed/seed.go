package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/hopebridge/eventhub/internal/app/models"
	appRepos "github.com/hopebridge/eventhub/internal/app/repositories"
)

// CreateDefaultData creates the default admin account and a handful of
// sample events on an empty database. Reruns are harmless; existing rows
// are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default Admin User --- //
	existing, err := userRepo.FindByEmail(ctx, "admin@hopebridge.in")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for admin user")
		finalErr = errors.Join(finalErr, err)
	} else if existing == nil {
		lgr.Info().Msg("Creating default admin user...")
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Name:         "HopeBridge Admin",
				Email:        "admin@hopebridge.in",
				PasswordHash: string(hashedPassword),
				RoleType:     appModels.RoleAdmin,
			}
			if _, err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// --- Sample Events --- //
	events, err := eventRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing events")
		return errors.Join(finalErr, err)
	}
	if len(events) > 0 {
		return finalErr
	}

	lgr.Info().Msg("Creating sample events...")
	today := time.Now()
	samples := []*appModels.Event{
		{
			Title:       "Community Food Drive",
			Location:    "City Hall Grounds",
			Date:        today.AddDate(0, 0, 14),
			Type:        "Social",
			Description: "Collecting and distributing food packages for families in need.",
			Status:      appModels.EventStatusActive,
			Capacity:    100,
		},
		{
			Title:       "Riverside Tree Plantation",
			Location:    "Riverside Park",
			Date:        today.AddDate(0, 0, 30),
			Type:        "Environment",
			Description: "Planting native saplings along the riverbank.",
			Status:      appModels.EventStatusActive,
			Capacity:    50,
		},
		{
			Title:       "Blood Donation Camp",
			Location:    "Community Center",
			Date:        today.AddDate(0, 0, -30),
			Type:        "Health",
			Description: "Quarterly blood donation camp with the city hospital.",
			Status:      appModels.EventStatusInactive,
			Capacity:    0,
		},
	}
	for _, event := range samples {
		if _, err := eventRepo.Create(ctx, event); err != nil {
			lgr.Error().Err(err).Str("title", event.Title).Msg("Error creating sample event")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
