package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/domain"
)

// UpdateNickname sets the display name of user. It returns ErrNotFound for
// an unknown user.
func UpdateNickname(ctx context.Context, db *gorm.DB, user uuid.UUID, nickname string) error {
	res := db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", user).
		Update("nickname", nickname)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
