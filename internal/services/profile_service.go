package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/assets"
	"github.com/pigskit/pigskit-server/internal/repo"
)

// ProfileUpdate carries the optional parts of a profile edit.
type ProfileUpdate struct {
	Nickname     *string
	Avatar       []byte // nil when absent
	DeleteAvatar bool
}

// ProfileService edits user profiles and their avatars.
type ProfileService struct {
	DB     *gorm.DB
	Assets assets.Store
}

// Update applies the present parts of u. Deleting the avatar takes
// precedence over replacing it.
func (s *ProfileService) Update(ctx context.Context, user uuid.UUID, u ProfileUpdate) (err error) {
	ctx, span := startSpan(ctx, "ProfileService", "Update",
		attribute.String("user.id", user.String()))
	defer func() { endSpan(span, err) }()

	if u.Nickname != nil {
		err := repo.UpdateNickname(ctx, s.DB, user, *u.Nickname)
		if errors.Is(err, repo.ErrNotFound) {
			return apierr.DataNotFound("user")
		}
		if err != nil {
			return err
		}
	}
	switch {
	case u.DeleteAvatar:
		return s.Assets.Delete(ctx, assets.AvatarKey(user))
	case u.Avatar != nil:
		return s.Assets.Put(ctx, assets.AvatarKey(user), u.Avatar)
	}
	return nil
}

// Avatar returns user's avatar. With fallback set, a user without one gets
// the default avatar.
func (s *ProfileService) Avatar(ctx context.Context, user uuid.UUID, fallback bool) (data []byte, err error) {
	ctx, span := startSpan(ctx, "ProfileService", "Avatar",
		attribute.String("user.id", user.String()),
		attribute.Bool("fallback", fallback))
	defer func() { endSpan(span, err) }()

	if fallback {
		data, err = assets.GetOr(ctx, s.Assets, assets.AvatarKey(user), assets.DefaultAvatar)
	} else {
		data, err = s.Assets.Get(ctx, assets.AvatarKey(user))
	}
	if errors.Is(err, assets.ErrNotFound) {
		return nil, apierr.DataNotFound("avatar")
	}
	return data, err
}

// PutAvatar replaces user's avatar.
func (s *ProfileService) PutAvatar(ctx context.Context, user uuid.UUID, image []byte) (err error) {
	ctx, span := startSpan(ctx, "ProfileService", "PutAvatar",
		attribute.String("user.id", user.String()))
	defer func() { endSpan(span, err) }()
	return s.Assets.Put(ctx, assets.AvatarKey(user), image)
}

// DeleteAvatar removes user's avatar.
func (s *ProfileService) DeleteAvatar(ctx context.Context, user uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "ProfileService", "DeleteAvatar",
		attribute.String("user.id", user.String()))
	defer func() { endSpan(span, err) }()
	return s.Assets.Delete(ctx, assets.AvatarKey(user))
}
