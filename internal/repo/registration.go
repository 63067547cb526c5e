package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/domain"
)

// CreateRegisterSession starts an empty registration session.
func CreateRegisterSession(ctx context.Context, db *gorm.DB) (uuid.UUID, error) {
	rec := domain.RegisterSession{ID: uuid.New()}
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return uuid.Nil, err
	}
	return rec.ID, nil
}

// DeleteRegisterSession drops a registration session. Missing rows are not
// an error.
func DeleteRegisterSession(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Delete(&domain.RegisterSession{}, "id = ?", id).Error
}

// RegisterSessionID returns id when a registration session with that token
// exists, or ErrNotFound.
func RegisterSessionID(ctx context.Context, db *gorm.DB, id uuid.UUID) (uuid.UUID, error) {
	var rec domain.RegisterSession
	err := db.WithContext(ctx).Select("id").Where("id = ?", id).Take(&rec).Error
	if err != nil {
		return uuid.Nil, notFound(err)
	}
	return rec.ID, nil
}

// GetRegisterField reads one readable column of a registration session.
// A column not yet filled yields nil.
func GetRegisterField(ctx context.Context, db *gorm.DB, id uuid.UUID, field domain.RegisterField) (*string, error) {
	if !field.Readable() {
		return nil, fmt.Errorf("repo: field %q is not readable", field)
	}
	var rec domain.RegisterSession
	err := db.WithContext(ctx).Select(string(field)).Where("id = ?", id).Take(&rec).Error
	if err != nil {
		return nil, notFound(err)
	}
	switch field {
	case domain.FieldEmail:
		return rec.Email, nil
	case domain.FieldPhone:
		return rec.Phone, nil
	default:
		return rec.Username, nil
	}
}

// SetRegisterField stores value in one column of a registration session.
// It returns ErrNotFound when the session no longer exists.
func SetRegisterField(ctx context.Context, db *gorm.DB, id uuid.UUID, field domain.RegisterField, value string) error {
	if !field.Valid() {
		return fmt.Errorf("repo: unknown registration field %q", field)
	}
	res := db.WithContext(ctx).Model(&domain.RegisterSession{}).
		Where("id = ?", id).
		Update(string(field), value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UserFieldTaken reports whether an existing user already holds value in
// the unique column field.
func UserFieldTaken(ctx context.Context, db *gorm.DB, field domain.RegisterField, value string) (bool, error) {
	if !field.Unique() {
		return false, fmt.Errorf("repo: field %q is not unique", field)
	}
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).
		Where(string(field)+" = ?", value).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}
