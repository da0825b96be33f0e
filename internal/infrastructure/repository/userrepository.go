package repository

import (
	"context"
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/mappers"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/recordstore"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type UserRepository struct {
	users  *recordstore.Collection[models.UserRecord]
	mapper mappers.UserMapper
}

func NewUserRepository(store *recordstore.Store) *UserRepository {
	return &UserRepository{
		users:  recordstore.NewCollection[models.UserRecord](store, recordstore.KeyUsers),
		mapper: mappers.NewUserMapper(),
	}
}

// Create checks email and Discord ID uniqueness inside the same
// read-modify-write that appends the user.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	record := r.mapper.ToRecord(u)

	err := r.users.Mutate(ctx, func(records []models.UserRecord) ([]models.UserRecord, error) {
		for _, existing := range records {
			if existing.Email == record.Email {
				return nil, apperrors.NewConflictError("email already registered", record.Email)
			}
			if existing.DiscordID == record.DiscordID {
				return nil, apperrors.NewConflictError("discord ID already registered", record.DiscordID)
			}
		}
		return append(records, *record), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	return r.findOne(ctx, func(rec *models.UserRecord) bool { return rec.ID == userID })
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.findOne(ctx, func(rec *models.UserRecord) bool { return rec.Email == email })
}

// UpdateByID applies fn to the stored user inside a single read-modify-write.
func (r *UserRepository) UpdateByID(ctx context.Context, userID string, fn func(*user.User) error) (*user.User, error) {
	var updated *user.User
	err := r.users.Mutate(ctx, func(records []models.UserRecord) ([]models.UserRecord, error) {
		for i := range records {
			if records[i].ID != userID {
				continue
			}
			u, err := r.toEntity(&records[i])
			if err != nil {
				return nil, err
			}
			if err := fn(u); err != nil {
				return nil, err
			}
			records[i] = *r.mapper.ToRecord(u)
			updated = u
			return records, nil
		}
		return nil, apperrors.NewNotFoundError("user not found")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	records, err := r.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users := make([]*user.User, 0, len(records))
	for i := range records {
		u, err := r.toEntity(&records[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, match func(*models.UserRecord) bool) (*user.User, error) {
	records, err := r.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for i := range records {
		if match(&records[i]) {
			return r.toEntity(&records[i])
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (r *UserRepository) toEntity(record *models.UserRecord) (*user.User, error) {
	u, err := r.mapper.ToEntity(record)
	if err != nil {
		return nil, apperrors.NewCorruptDataError(r.users.Key(), err)
	}
	return u, nil
}
