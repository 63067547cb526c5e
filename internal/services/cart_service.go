package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/repo"
)

// CartService manages guest carts. Carts are addressed by their GSSID
// token, which the backend procedures validate on every call.
type CartService struct {
	DB *gorm.DB
	// IdempotencyTTL is how long a keyed order submission is remembered.
	IdempotencyTTL time.Duration
}

// Open returns the cart token to use for shop, reusing token while it is
// live.
func (s *CartService) Open(ctx context.Context, token uuid.NullUUID, shop uuid.UUID) (gssid uuid.UUID, err error) {
	ctx, span := startSpan(ctx, "CartService", "Open",
		attribute.String("shop.id", shop.String()))
	defer func() { endSpan(span, err) }()
	return repo.PutCart(ctx, s.DB, token, shop)
}

func (s *CartService) AddItem(ctx context.Context, token uuid.UUID, item repo.CartItem) (err error) {
	ctx, span := startSpan(ctx, "CartService", "AddItem",
		attribute.String("shop.id", item.ShopID.String()),
		attribute.String("product.key", item.ProductKey.String()))
	defer func() { endSpan(span, err) }()
	return repo.CreateCartItem(ctx, s.DB, token, item)
}

func (s *CartService) UpdateItem(ctx context.Context, token, shop, item uuid.UUID, payload string) (err error) {
	ctx, span := startSpan(ctx, "CartService", "UpdateItem",
		attribute.String("shop.id", shop.String()))
	defer func() { endSpan(span, err) }()
	return repo.UpdateCartItem(ctx, s.DB, token, shop, item, payload)
}

func (s *CartService) DeleteItem(ctx context.Context, token, shop, item uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "CartService", "DeleteItem",
		attribute.String("shop.id", shop.String()))
	defer func() { endSpan(span, err) }()
	return repo.DeleteCartItem(ctx, s.DB, token, shop, item)
}

var errReplayed = errors.New("order already placed")

// PlaceOrder turns the cart's lines for shop into an order. When key is
// set, a submission repeated with the same key within IdempotencyTTL is
// reported as replayed and places no second order.
func (s *CartService) PlaceOrder(ctx context.Context, token, shop uuid.UUID, key string) (replayed bool, err error) {
	ctx, span := startSpan(ctx, "CartService", "PlaceOrder",
		attribute.String("shop.id", shop.String()),
		attribute.Bool("idempotent", key != ""))
	defer func() { endSpan(span, err) }()

	if key == "" {
		return false, repo.CreateOrder(ctx, s.DB, token, shop)
	}

	if _, err := repo.GetIdempotency(ctx, s.DB, token, shop, key, time.Now().UTC()); err == nil {
		return true, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		log.Ctx(ctx).Warn().Err(err).Msg("idempotency lookup failed")
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateOrder(ctx, tx, token, shop); err != nil {
			return err
		}
		_, err := repo.CreateIdempotency(ctx, tx, token, shop, key, http.StatusOK, s.IdempotencyTTL)
		if errors.Is(err, repo.ErrDuplicate) {
			// A concurrent submission with the same key won the race.
			return errReplayed
		}
		return err
	})
	if errors.Is(err, errReplayed) {
		return true, nil
	}
	return false, err
}
