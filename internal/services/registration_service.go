package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/domain"
	"github.com/pigskit/pigskit-server/internal/repo"
)

// OperationSubmit finalizes a registration session into a user.
const OperationSubmit = "submit"

var (
	reEmail    = regexp.MustCompile(`^\w+@(?:\w+\.)+\w+$`)
	rePhone    = regexp.MustCompile(`^09\d{8}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	rePassword = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	reUpper    = regexp.MustCompile(`[A-Z]`)
	reLower    = regexp.MustCompile(`[a-z]`)
	reDigit    = regexp.MustCompile(`[0-9]`)
)

// RegistrationService drives the multi-step sign-up flow. Each step stores
// one field in the registration session; the final submit turns the
// session into a user.
type RegistrationService struct {
	DB *gorm.DB
}

// Start replaces any previous registration session with a new empty one.
func (s *RegistrationService) Start(ctx context.Context, previous uuid.NullUUID) (id uuid.UUID, err error) {
	ctx, span := startSpan(ctx, "RegistrationService", "Start")
	defer func() { endSpan(span, err) }()

	if previous.Valid {
		if derr := repo.DeleteRegisterSession(ctx, s.DB, previous.UUID); derr != nil {
			log.Ctx(ctx).Debug().Err(derr).Msg("dropping previous registration session failed")
		}
	}
	return repo.CreateRegisterSession(ctx, s.DB)
}

// Field returns the value stored for operation, which must name a readable
// field. A field not yet filled yields nil.
func (s *RegistrationService) Field(ctx context.Context, session uuid.UUID, operation string) (v *string, err error) {
	ctx, span := startSpan(ctx, "RegistrationService", "Field",
		attribute.String("operation", operation))
	defer func() { endSpan(span, err) }()

	field := domain.RegisterField(operation)
	if !field.Readable() {
		return nil, apierr.UnsupportedOperation()
	}
	v, err = repo.GetRegisterField(ctx, s.DB, session, field)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apierr.SessionExpired(apierr.CookieRegistration)
	}
	return v, err
}

// Step applies one registration operation. "submit" finalizes the session;
// every other operation validates data and stores it in the named field.
func (s *RegistrationService) Step(ctx context.Context, session uuid.UUID, operation string, data *string) (err error) {
	ctx, span := startSpan(ctx, "RegistrationService", "Step",
		attribute.String("operation", operation))
	defer func() { endSpan(span, err) }()

	if operation == OperationSubmit {
		ok, err := repo.RegisterUser(ctx, s.DB, session)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.OperationFailed()
		}
		return nil
	}

	if data == nil {
		return apierr.MissingBody("data")
	}
	field := domain.RegisterField(operation)
	value, err := normalizeField(field, *data)
	if err != nil {
		return err
	}

	if field.Unique() {
		taken, err := repo.UserFieldTaken(ctx, s.DB, field, value)
		if err != nil {
			return err
		}
		if taken {
			return apierr.UniqueDataConflict(string(field))
		}
	}

	err = repo.SetRegisterField(ctx, s.DB, session, field, value)
	if errors.Is(err, repo.ErrNotFound) {
		return apierr.SessionExpired(apierr.CookieRegistration)
	}
	return err
}

// normalizeField validates value for field and returns the form to store.
func normalizeField(field domain.RegisterField, value string) (string, error) {
	switch field {
	case domain.FieldEmail:
		value = cases.Lower(language.Und).String(value)
		if !reEmail.MatchString(value) {
			return "", apierr.InvalidData("data")
		}
	case domain.FieldPhone:
		if !rePhone.MatchString(value) {
			return "", apierr.InvalidData("data")
		}
	case domain.FieldUsername:
		if !reUsername.MatchString(value) {
			return "", apierr.InvalidData("data")
		}
	case domain.FieldPassword:
		if !rePassword.MatchString(value) ||
			!reUpper.MatchString(value) ||
			!reLower.MatchString(value) ||
			!reDigit.MatchString(value) {
			return "", apierr.InvalidData("data")
		}
	default:
		return "", apierr.UnsupportedOperation()
	}
	return value, nil
}
