package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/domain"
	"github.com/pigskit/pigskit-server/internal/repo"
)

// ShopService manages shops and their members. Authority rules are
// enforced by the backend procedures.
type ShopService struct {
	DB *gorm.DB
}

// Create opens a shop owned by owner.
func (s *ShopService) Create(ctx context.Context, owner uuid.UUID, name string) (err error) {
	ctx, span := startSpan(ctx, "ShopService", "Create",
		attribute.String("user.id", owner.String()))
	defer func() { endSpan(span, err) }()
	return repo.CreateShop(ctx, s.DB, owner, name)
}

// AddMember adds member to shop on behalf of actor.
func (s *ShopService) AddMember(ctx context.Context, actor, shop, member uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "ShopService", "AddMember",
		attribute.String("shop.id", shop.String()),
		attribute.String("member.id", member.String()))
	defer func() { endSpan(span, err) }()
	return repo.CreateShopMember(ctx, s.DB, actor, shop, member)
}

// SetMemberAuthority grants member permission p for authority a in shop.
func (s *ShopService) SetMemberAuthority(ctx context.Context, actor, shop, member uuid.UUID, a domain.Authority, p domain.Permission) (err error) {
	ctx, span := startSpan(ctx, "ShopService", "SetMemberAuthority",
		attribute.String("shop.id", shop.String()),
		attribute.String("member.id", member.String()),
		attribute.String("authority", string(a)),
		attribute.String("permission", string(p)))
	defer func() { endSpan(span, err) }()
	return repo.UpdateMemberAuthority(ctx, s.DB, actor, shop, member, a, p)
}
