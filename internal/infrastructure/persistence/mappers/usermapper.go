package mappers

import (
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToEntity(record *models.UserRecord) (*user.User, error)
	ToRecord(entity *user.User) *models.UserRecord
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(record *models.UserRecord) (*user.User, error) {
	if record == nil {
		return nil, nil
	}
	entity, err := user.ReconstructUser(
		record.ID,
		record.Name,
		record.Email,
		record.DiscordID,
		record.PasswordHash,
		record.RegisteredAt,
		record.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

func (m *UserMapperImpl) ToRecord(entity *user.User) *models.UserRecord {
	if entity == nil {
		return nil
	}
	return &models.UserRecord{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Email:        entity.Email(),
		DiscordID:    entity.DiscordID(),
		PasswordHash: entity.PasswordHash(),
		RegisteredAt: entity.RegisteredAt(),
		IsActive:     entity.IsActive(),
	}
}
