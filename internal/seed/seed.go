package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/app/repositories"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/auth"
)

// Admin describes the bootstrap back-office account
type Admin struct {
	Username string
	Password string
	Email    string
	FullName string
}

// CreateDefaultData fills empty tables with the default dataset and creates
// the bootstrap admin when no admin exists. Tables that already hold rows are
// left alone. Errors are collected so one failing table does not stop the rest.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, admin Admin, now time.Time, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	data := Default(now)
	var finalErr error

	branchIDs, err := seedBranches(ctx, repos, data, lgr)
	finalErr = errors.Join(finalErr, err)

	// pastors and events reference branches by their inserted ids
	if branchIDs != nil {
		finalErr = errors.Join(finalErr, seedPastors(ctx, repos, data, branchIDs, lgr))
		finalErr = errors.Join(finalErr, seedEvents(ctx, repos, data, branchIDs, lgr))
	}
	finalErr = errors.Join(finalErr, seedChurchInfo(ctx, repos, data, lgr))
	finalErr = errors.Join(finalErr, seedHighlights(ctx, repos, data, lgr))
	finalErr = errors.Join(finalErr, seedTestimonies(ctx, repos, data, lgr))
	finalErr = errors.Join(finalErr, CreateAdmin(ctx, repos.AdminRepository, admin, now, lgr))

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// seedBranches returns the dataset id to database id mapping, or nil when
// the table already had rows.
func seedBranches(ctx context.Context, repos *repositories.Repositories, data *Dataset, lgr zerolog.Logger) (map[int64]int64, error) {
	existing, err := repos.BranchRepository.GetAll(ctx, false)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking branches")
		return nil, err
	}
	if len(existing) > 0 {
		lgr.Info().Int("count", len(existing)).Msg("Branches already present, skipping")
		return nil, nil
	}

	ids := make(map[int64]int64, len(data.Branches))
	var finalErr error
	for _, b := range data.Branches {
		datasetID := b.ID
		if err := repos.BranchRepository.Create(ctx, b); err != nil {
			lgr.Error().Err(err).Str("branch", b.Name).Msg("Error creating default branch")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		ids[datasetID] = b.ID
	}
	lgr.Info().Int("count", len(ids)).Msg("Default branches created")
	return ids, finalErr
}

func seedPastors(ctx context.Context, repos *repositories.Repositories, data *Dataset, branchIDs map[int64]int64, lgr zerolog.Logger) error {
	var finalErr error
	for _, p := range data.Pastors {
		id, ok := branchIDs[p.BranchID]
		if !ok {
			continue
		}
		p.BranchID = id
		if err := repos.PastorRepository.Create(ctx, p); err != nil {
			lgr.Error().Err(err).Str("pastor", p.FirstName+" "+p.LastName).Msg("Error creating default pastor")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

func seedEvents(ctx context.Context, repos *repositories.Repositories, data *Dataset, branchIDs map[int64]int64, lgr zerolog.Logger) error {
	existing, err := repos.EventRepository.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking events")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var finalErr error
	for _, e := range data.Events {
		if e.BranchID != nil {
			id, ok := branchIDs[*e.BranchID]
			if !ok {
				e.BranchID = nil
			} else {
				e.BranchID = &id
			}
		}
		if err := repos.EventRepository.Create(ctx, e); err != nil {
			lgr.Error().Err(err).Str("event", e.Title).Msg("Error creating default event")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

func seedChurchInfo(ctx context.Context, repos *repositories.Repositories, data *Dataset, lgr zerolog.Logger) error {
	_, err := repos.ChurchInfoRepository.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		lgr.Error().Err(err).Msg("Error checking church info")
		return err
	}
	if err := repos.ChurchInfoRepository.Create(ctx, data.ChurchInfo); err != nil {
		lgr.Error().Err(err).Msg("Error creating default church info")
		return err
	}
	lgr.Info().Int64("id", data.ChurchInfo.ID).Msg("Default church info created")
	return nil
}

func seedHighlights(ctx context.Context, repos *repositories.Repositories, data *Dataset, lgr zerolog.Logger) error {
	existing, err := repos.HighlightRepository.GetAll(ctx, false)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking highlights")
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var finalErr error
	for _, h := range data.Highlights {
		if err := repos.HighlightRepository.Create(ctx, h); err != nil {
			lgr.Error().Err(err).Str("highlight", h.Title).Msg("Error creating default highlight")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

func seedTestimonies(ctx context.Context, repos *repositories.Repositories, data *Dataset, lgr zerolog.Logger) error {
	_, total, err := repos.TestimonyRepository.List(ctx, 0, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking testimonies")
		return err
	}
	if total > 0 {
		return nil
	}

	var finalErr error
	for _, t := range data.Testimonies {
		if err := repos.TestimonyRepository.Create(ctx, t); err != nil {
			lgr.Error().Err(err).Msg("Error creating default testimony")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

// AdminCreator is the subset of the admin repository CreateAdmin needs
type AdminCreator interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, a *models.Admin) error
}

// CreateAdmin inserts the bootstrap admin when the admins table is empty
func CreateAdmin(ctx context.Context, repo AdminCreator, admin Admin, now time.Time, lgr zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if an admin exists")
		return err
	}
	if count > 0 {
		lgr.Info().Msg("Admin account already exists, skipping creation")
		return nil
	}
	if admin.Username == "" || admin.Password == "" {
		return fmt.Errorf("%w: bootstrap admin username and password are required", apperrors.ErrValidationFailed)
	}

	lgr.Info().Str("username", admin.Username).Msg("Creating default admin account...")
	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	a := &models.Admin{
		Username:     admin.Username,
		PasswordHash: hash,
		Email:        admin.Email,
		FullName:     admin.FullName,
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := repo.Create(ctx, a); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Info().Msg("Admin account already exists, skipping creation")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin account")
		return err
	}
	lgr.Info().Int64("adminID", a.ID).Msg("Default admin account created successfully")
	return nil
}
