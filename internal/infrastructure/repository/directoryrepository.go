package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parley/internal/domain/directory"
	"parley/internal/infrastructure/persistence/models"
	"parley/internal/shared/db"
)

// DirectoryRepository reads the host platform's user and team tables.
// It is strictly read-only.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(gdb *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: gdb}
}

func (r *DirectoryRepository) GetUser(ctx context.Context, userID uint) (*directory.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return userToDomain(&model), nil
}

func (r *DirectoryRepository) GetUsers(ctx context.Context, userIDs []uint) (map[uint]*directory.User, error) {
	result := make(map[uint]*directory.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var userModels []models.UserModel
	if err := tx.Where("id IN ?", userIDs).Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	for i := range userModels {
		result[userModels[i].ID] = userToDomain(&userModels[i])
	}
	return result, nil
}

func (r *DirectoryRepository) ListUsers(ctx context.Context, offset, limit int) ([]*directory.User, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var userModels []models.UserModel
	if err := tx.
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*directory.User, len(userModels))
	for i := range userModels {
		users[i] = userToDomain(&userModels[i])
	}
	return users, nil
}

func (r *DirectoryRepository) CountUsers(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *DirectoryRepository) GetTeam(ctx context.Context, teamID uint) (*directory.Team, error) {
	var model models.TeamModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("team not found")
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	return &directory.Team{ID: model.ID, Name: model.Name}, nil
}

func (r *DirectoryRepository) ListTeamUsers(ctx context.Context, teamID uint) ([]*directory.User, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var userModels []models.UserModel
	if err := tx.
		Where("team_id = ?", teamID).
		Order("id ASC").
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list team users: %w", err)
	}

	users := make([]*directory.User, len(userModels))
	for i := range userModels {
		users[i] = userToDomain(&userModels[i])
	}
	return users, nil
}

func userToDomain(model *models.UserModel) *directory.User {
	return &directory.User{
		ID:     model.ID,
		Name:   model.Name,
		Email:  model.Email,
		TeamID: model.TeamID,
	}
}
