package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/repo"
)

// AccountService manages user sign-in sessions.
type AccountService struct {
	DB *gorm.DB
}

// SignIn ends the caller's previous session, if any, and opens a new one
// for the given credentials. Unknown credentials yield Unauthorized.
func (s *AccountService) SignIn(ctx context.Context, previous uuid.NullUUID, username, password string) (token uuid.UUID, err error) {
	ctx, span := startSpan(ctx, "AccountService", "SignIn")
	defer func() { endSpan(span, err) }()

	if previous.Valid {
		s.signOut(ctx, previous.UUID)
	}
	token, err = repo.SignIn(ctx, s.DB, username, password)
	if errors.Is(err, repo.ErrNotFound) {
		return uuid.Nil, apierr.Unauthorized()
	}
	return token, err
}

// SignOut ends the session identified by token. Sign-out never fails from
// the client's point of view; backend errors are logged.
func (s *AccountService) SignOut(ctx context.Context, token uuid.NullUUID) {
	if !token.Valid {
		return
	}
	ctx, span := startSpan(ctx, "AccountService", "SignOut")
	defer span.End()
	s.signOut(ctx, token.UUID)
}

func (s *AccountService) signOut(ctx context.Context, token uuid.UUID) {
	if err := repo.SignOut(ctx, s.DB, token); err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("sign-out of previous session failed")
	}
}
