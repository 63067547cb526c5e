// Package handlers implements the /api and /fs endpoints.
//
// Every endpoint is a filter.Filter whose first stage is a method check, so
// the router can mount one path with several alternatives under filter.Or.
// The stages that follow extract what the endpoint needs (session
// identities, JSON or query payloads, multipart forms) into typed keys, and
// the last stage calls a service and writes the reply. Failures are returned,
// never written; the dispatch middleware renders them.
package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/pigskit/pigskit-server/internal/domain"
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/http/form"
	"github.com/pigskit/pigskit-server/internal/http/session"
	"github.com/pigskit/pigskit-server/internal/repo"
	"github.com/pigskit/pigskit-server/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService signs users in and out.
type AccountService interface {
	// SignIn verifies credentials and returns a fresh user session token.
	// A previous token is ended first.
	SignIn(ctx context.Context, previous uuid.NullUUID, username, password string) (uuid.UUID, error)
	// SignOut ends token when present. It never fails.
	SignOut(ctx context.Context, token uuid.NullUUID)
}

// RegistrationService drives multi-step sign-up.
type RegistrationService interface {
	Start(ctx context.Context, previous uuid.NullUUID) (uuid.UUID, error)
	Field(ctx context.Context, session uuid.UUID, operation string) (*string, error)
	Step(ctx context.Context, session uuid.UUID, operation string, data *string) error
}

// ProfileService manages the signed-in user's nickname and avatar.
type ProfileService interface {
	Update(ctx context.Context, user uuid.UUID, u services.ProfileUpdate) error
	Avatar(ctx context.Context, user uuid.UUID, fallback bool) ([]byte, error)
	PutAvatar(ctx context.Context, user uuid.UUID, image []byte) error
	DeleteAvatar(ctx context.Context, user uuid.UUID) error
}

// ShopService creates shops and administers their members.
type ShopService interface {
	Create(ctx context.Context, owner uuid.UUID, name string) error
	AddMember(ctx context.Context, actor, shop, member uuid.UUID) error
	SetMemberAuthority(ctx context.Context, actor, shop, member uuid.UUID, a domain.Authority, p domain.Permission) error
}

// ProductService manages a shop's products and their images.
type ProductService interface {
	Create(ctx context.Context, user, shop uuid.UUID, payload string, image []byte) (uuid.UUID, error)
	Update(ctx context.Context, user, shop, product uuid.UUID, u services.ProductUpdate) error
	Delete(ctx context.Context, user, shop, product uuid.UUID) error
	Image(ctx context.Context, shop, product uuid.UUID, fallback bool) ([]byte, error)
	PutImage(ctx context.Context, user, shop, product uuid.UUID, image []byte) error
	DeleteImage(ctx context.Context, user, shop, product uuid.UUID) error
}

// CartService manages guest carts and order placement.
type CartService interface {
	Open(ctx context.Context, token uuid.NullUUID, shop uuid.UUID) (uuid.UUID, error)
	AddItem(ctx context.Context, token uuid.UUID, item repo.CartItem) error
	UpdateItem(ctx context.Context, token, shop, item uuid.UUID, payload string) error
	DeleteItem(ctx context.Context, token, shop, item uuid.UUID) error
	// PlaceOrder reports replayed when key matches an order already placed
	// for this cart and shop.
	PlaceOrder(ctx context.Context, token, shop uuid.UUID, key string) (replayed bool, err error)
}

//
// Handler wiring
//

// Deps carries everything New needs.
type Deps struct {
	Accounts     AccountService
	Registration RegistrationService
	Profiles     ProfileService
	Shops        ShopService
	Products     ProductService
	Carts        CartService
	Sessions     *session.Resolver

	// MaxFormBytes caps multipart bodies that carry more than an image.
	MaxFormBytes int64
	// MaxAvatarBytes caps the avatar upload under /fs.
	MaxAvatarBytes int64
}

// Handlers groups every endpoint. It depends on abstract services so that
// transport concerns stay apart from business rules.
type Handlers struct {
	accounts     AccountService
	registration RegistrationService
	profiles     ProfileService
	shops        ShopService
	products     ProductService
	carts        CartService
	sessions     *session.Resolver

	profileForm      form.Schema
	avatarForm       form.Schema
	productForm      form.Schema
	productPatchForm form.Schema
	productImageForm form.Schema
}

// New builds Handlers from d.
func New(d Deps) *Handlers {
	return &Handlers{
		accounts:     d.Accounts,
		registration: d.Registration,
		profiles:     d.Profiles,
		shops:        d.Shops,
		products:     d.Products,
		carts:        d.Carts,
		sessions:     d.Sessions,

		profileForm: form.NewSchema(d.MaxFormBytes,
			form.Optional("nickname", form.Text),
			form.Optional("avatar", form.Binary),
			form.Optional("delete_avatar", form.Bool),
		),
		avatarForm: form.NewSchema(d.MaxAvatarBytes,
			form.Required("avatar", form.Binary),
		),
		productForm: form.NewSchema(d.MaxFormBytes,
			form.Required("shop_id", form.ID),
			form.Required("payload", form.Text),
			form.Optional("image", form.Binary),
		),
		productPatchForm: form.NewSchema(d.MaxFormBytes,
			form.Required("shop_id", form.ID),
			form.Required("product_key", form.ID),
			form.Optional("payload", form.Text),
			form.Optional("delete_image", form.Bool),
			form.Optional("image", form.Binary),
		),
		productImageForm: form.NewSchema(d.MaxFormBytes,
			form.Required("shop_id", form.ID),
			form.Required("product_key", form.ID),
			form.Required("image", form.Binary),
		),
	}
}

// Keys shared by several endpoints.
var (
	userKey      = filter.NewKey[uuid.UUID]("user")
	userTokenKey = filter.NewKey[uuid.NullUUID]("user.token")
	cartKey      = filter.NewKey[uuid.UUID]("cart")
	cartTokenKey = filter.NewKey[uuid.UUID]("cart.token")
	regKey       = filter.NewKey[uuid.UUID]("registration")
	regTokenKey  = filter.NewKey[uuid.NullUUID]("registration.token")
	formKey      = filter.NewKey[form.Values]("form")
)
