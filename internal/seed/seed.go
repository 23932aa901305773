// Package seed bootstraps the default administrator account.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	agentdomain "github.com/hotspotid/salesledger/internal/agent/domain"
	"github.com/hotspotid/salesledger/internal/auth/password"
	"gorm.io/gorm"
)

const (
	defaultAdminUserName = "admin"
	defaultAdminPassword = "admin"
)

// EnsureAdminUser creates the bootstrap administrator when the users table is
// empty, so a fresh install has a login out of the box.
func EnsureAdminUser(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&agentdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}

		admin := agentdomain.User{
			ID:           node.Generate().Int64(),
			RoleID:       agentdomain.RoleAdmin,
			UserName:     defaultAdminUserName,
			PasswordHash: hashed,
			IsActive:     true,
		}
		return tx.Create(&admin).Error
	})
}
