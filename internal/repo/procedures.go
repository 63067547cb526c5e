package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/domain"
)

var errNoRows = sql.ErrNoRows

// scanID runs a single-value query returning an identifier. A NULL result
// is reported as ErrNotFound.
func scanID(ctx context.Context, db *gorm.DB, query string, args ...any) (uuid.UUID, error) {
	var id uuid.NullUUID
	if err := db.WithContext(ctx).Raw(query, args...).Row().Scan(&id); err != nil {
		return uuid.Nil, notFound(err)
	}
	if !id.Valid {
		return uuid.Nil, ErrNotFound
	}
	return id.UUID, nil
}

func scanBool(ctx context.Context, db *gorm.DB, query string, args ...any) (bool, error) {
	var ok sql.NullBool
	if err := db.WithContext(ctx).Raw(query, args...).Row().Scan(&ok); err != nil {
		return false, notFound(err)
	}
	return ok.Valid && ok.Bool, nil
}

func exec(ctx context.Context, db *gorm.DB, query string, args ...any) error {
	return db.WithContext(ctx).Exec(query, args...).Error
}

// --- user sessions ---

// SignIn creates a user session and returns its token.
func SignIn(ctx context.Context, db *gorm.DB, username, password string) (uuid.UUID, error) {
	return scanID(ctx, db, "SELECT signin_user(?, ?) AS id", username, password)
}

// SignOut ends the session identified by token. Unknown tokens are not an
// error.
func SignOut(ctx context.Context, db *gorm.DB, token uuid.UUID) error {
	return exec(ctx, db, "SELECT signout_user(?)", token)
}

// SessionUser returns the user owning a live session token.
func SessionUser(ctx context.Context, db *gorm.DB, token uuid.UUID) (uuid.UUID, error) {
	return scanID(ctx, db, "SELECT get_session_user(?) AS id", token)
}

// --- cart ---

// PutCart opens a cart session for shop, reusing token when it is still
// live, and returns the session token to hand out.
func PutCart(ctx context.Context, db *gorm.DB, token uuid.NullUUID, shopID uuid.UUID) (uuid.UUID, error) {
	return scanID(ctx, db, "SELECT put_cart(?, ?) AS gssid", token, shopID)
}

// CartSession returns the cart session a live token stands for.
func CartSession(ctx context.Context, db *gorm.DB, token uuid.UUID) (uuid.UUID, error) {
	return scanID(ctx, db, "SELECT get_cart_session(?) AS gssid", token)
}

// CartItem is the payload of a new cart line.
type CartItem struct {
	ShopID     uuid.UUID
	ProductKey uuid.UUID
	Remark     *string
	Count      int32
	CusSel     string
}

func CreateCartItem(ctx context.Context, db *gorm.DB, cart uuid.UUID, it CartItem) error {
	return exec(ctx, db, "SELECT cart_create_item(?, ?, ?, ?, ?, ?)",
		cart, it.ShopID, it.ProductKey, it.Remark, it.Count, it.CusSel)
}

func UpdateCartItem(ctx context.Context, db *gorm.DB, cart, shopID, itemKey uuid.UUID, payload string) error {
	return exec(ctx, db, "SELECT cart_update_item(?, ?, ?, ?)", cart, shopID, itemKey, payload)
}

func DeleteCartItem(ctx context.Context, db *gorm.DB, cart, shopID, itemKey uuid.UUID) error {
	return exec(ctx, db, "SELECT cart_delete_item(?, ?, ?)", cart, shopID, itemKey)
}

// CreateOrder turns the cart's lines for shop into an order.
func CreateOrder(ctx context.Context, db *gorm.DB, cart, shopID uuid.UUID) error {
	return exec(ctx, db, "SELECT create_order(?, ?)", cart, shopID)
}

// --- shops ---

func CreateShop(ctx context.Context, db *gorm.DB, owner uuid.UUID, name string) error {
	return exec(ctx, db, "SELECT create_shop(?, ?)", owner, name)
}

func CreateShopMember(ctx context.Context, db *gorm.DB, actor, shopID, member uuid.UUID) error {
	return exec(ctx, db, "SELECT shop_user_create(?, ?, ?)", actor, shopID, member)
}

func UpdateMemberAuthority(ctx context.Context, db *gorm.DB, actor, shopID, member uuid.UUID, a domain.Authority, p domain.Permission) error {
	return exec(ctx, db, "SELECT shop_user_update_authority(?, ?, ?, ?, ?)", actor, shopID, member, string(a), string(p))
}

// HasAuthority reports whether user holds permission p for authority a in shop.
func HasAuthority(ctx context.Context, db *gorm.DB, shopID, user uuid.UUID, a domain.Authority, p domain.Permission) (bool, error) {
	return scanBool(ctx, db, "SELECT check_shop_user_authority(?, ?, ?, ?) AS ok", shopID, user, string(a), string(p))
}

// --- products ---

// CreateProduct stores a product described by payload and returns its key.
func CreateProduct(ctx context.Context, db *gorm.DB, shopID uuid.UUID, payload string) (uuid.UUID, error) {
	return scanID(ctx, db, "SELECT product_key FROM shop_create_product(?, ?)", shopID, payload)
}

func UpdateProduct(ctx context.Context, db *gorm.DB, shopID, productKey uuid.UUID, payload string) error {
	return exec(ctx, db, "SELECT shop_update_product(?, ?, ?)", shopID, productKey, payload)
}

func DeleteProduct(ctx context.Context, db *gorm.DB, shopID, productKey uuid.UUID) error {
	return exec(ctx, db, "SELECT shop_delete_product(?, ?)", shopID, productKey)
}

func SetProductHasPicture(ctx context.Context, db *gorm.DB, shopID, productKey uuid.UUID, has bool) error {
	return exec(ctx, db, "SELECT shop_set_product_has_picture(?, ?, ?)", shopID, productKey, has)
}

// ProductExists reports whether shop lists a product under productKey.
func ProductExists(ctx context.Context, db *gorm.DB, shopID, productKey uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Raw("SELECT count(*) FROM query_shop_products(?) WHERE key = ?", shopID, productKey).
		Row().Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RegisterUser submits a completed registration session as a new user.
// It reports false when the session is incomplete.
func RegisterUser(ctx context.Context, db *gorm.DB, session uuid.UUID) (bool, error) {
	return scanBool(ctx, db, "SELECT register_user(?) AS ok", session)
}
