package repository

import (
	"context"
	"errors"

	agentdomain "github.com/hotspotid/salesledger/internal/agent/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() agentdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *agentdomain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByUserName(ctx context.Context, db *gorm.DB, userName string) (*agentdomain.User, error) {
	var user agentdomain.User
	err := db.WithContext(ctx).
		Where("user_name = ?", userName).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) ListByRole(ctx context.Context, db *gorm.DB, roleID int) ([]agentdomain.User, error) {
	var users []agentdomain.User
	err := db.WithContext(ctx).
		Where("role_id = ?", roleID).
		Order("user_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&agentdomain.User{}).Count(&count).Error
	return count, err
}
