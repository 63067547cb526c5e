// Cart HTTP handlers.
//
// Guest carts are carried by the GSSID cookie:
//   - /api/cart/session  open a cart for a shop
//   - /api/cart/item     add, update, delete an item
//   - /api/cart/order    place the order (Idempotency-Key aware)
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/http/middleware"
	"github.com/pigskit/pigskit-server/internal/http/session"
	"github.com/pigskit/pigskit-server/internal/repo"
	"github.com/pigskit/pigskit-server/internal/utils"
)

//
// DTOs
//

// ShopRef names a shop.
type ShopRef struct {
	ShopID uuid.UUID `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
}

// CartItemRequest adds a product to the cart. Count may be sent as a
// number or as a decimal string.
type CartItemRequest struct {
	ShopID     uuid.UUID   `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
	ProductKey uuid.UUID   `json:"product_key" binding:"required" swaggertype:"string" format:"uuid"`
	Remark     *string     `json:"remark" example:"no onions"`
	Count      json.Number `json:"count" binding:"required" swaggertype:"string" example:"2"`
	CusSel     string      `json:"cus_sel" binding:"required" example:"{\"size\":\"L\"}"`
}

// CartItemUpdate replaces an item's payload.
type CartItemUpdate struct {
	ShopID  uuid.UUID `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
	ItemKey uuid.UUID `json:"item_key" binding:"required" swaggertype:"string" format:"uuid"`
	Payload string    `json:"payload" binding:"required"`
}

// CartItemRef names an item of the cart.
type CartItemRef struct {
	ShopID  uuid.UUID `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
	ItemKey uuid.UUID `json:"item_key" binding:"required" swaggertype:"string" format:"uuid"`
}

var (
	cartOptTokenKey = filter.NewKey[uuid.NullUUID]("cart.previous")
	shopRefKey      = filter.NewKey[ShopRef]("shop.ref")
	cartItemKey     = filter.NewKey[CartItemRequest]("cart.item")
	cartUpdateKey   = filter.NewKey[CartItemUpdate]("cart.update")
	cartItemRefKey  = filter.NewKey[CartItemRef]("cart.item.ref")
)

// cart resolves a live GSSID and keeps the raw token for the backend.
func (h *Handlers) cart() filter.Filter {
	return filter.And(
		h.sessions.Required(session.Cart, cartKey),
		session.Token(session.Cart, cartTokenKey),
	)
}

// OpenCart godoc
// @ID          openCart
// @Summary     Open a cart
// @Description Opens a guest cart for the shop and sets the GSSID cookie. A cart already carried by the request is handed to the backend, which may reuse it.
// @Tags        Cart
// @Accept      json
// @Param       body  body  handlers.ShopRef  true  "Shop"
// @Success     200  "GSSID cookie set"
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / OperationFailed"
// @Router      /api/cart/session [post]
func (h *Handlers) OpenCart() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		session.OptionalToken(session.Cart, cartOptTokenKey),
		filter.JSON(shopRefKey),
		func(c *gin.Context) error {
			token, err := h.carts.Open(c.Request.Context(), cartOptTokenKey.Value(c), shopRefKey.Value(c).ShopID)
			if err != nil {
				return err
			}
			h.sessions.Issue(c, session.Cart, token)
			return done(c)
		},
	)
}

// AddCartItem godoc
// @ID          addCartItem
// @Summary     Add a cart item
// @Tags        Cart
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.CartItemRequest  true  "Item"
// @Success     200  {string}  string  "Successfully create cart item."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / NoValidCookie / CartItemExpired"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/cart/item [post]
func (h *Handlers) AddCartItem() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.cart(),
		filter.JSON(cartItemKey),
		func(c *gin.Context) error {
			req := cartItemKey.Value(c)
			count, err := utils.ParseInt(req.Count.String())
			if err != nil {
				return apierr.InvalidData("count")
			}
			err = h.carts.AddItem(c.Request.Context(), cartTokenKey.Value(c), repo.CartItem{
				ShopID:     req.ShopID,
				ProductKey: req.ProductKey,
				Remark:     req.Remark,
				Count:      count,
				CusSel:     req.CusSel,
			})
			if err != nil {
				return err
			}
			return text(c, "Successfully create cart item.")
		},
	)
}

// UpdateCartItem godoc
// @ID          updateCartItem
// @Summary     Update a cart item
// @Tags        Cart
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.CartItemUpdate  true  "Item"
// @Success     200  {string}  string  "Successfully update cart item."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / NoValidCookie / CartItemExpired"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/cart/item [patch]
func (h *Handlers) UpdateCartItem() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPatch),
		h.cart(),
		filter.JSON(cartUpdateKey),
		func(c *gin.Context) error {
			req := cartUpdateKey.Value(c)
			if err := h.carts.UpdateItem(c.Request.Context(), cartTokenKey.Value(c), req.ShopID, req.ItemKey, req.Payload); err != nil {
				return err
			}
			return text(c, "Successfully update cart item.")
		},
	)
}

// DeleteCartItem godoc
// @ID          deleteCartItem
// @Summary     Delete a cart item
// @Tags        Cart
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.CartItemRef  true  "Item"
// @Success     200  {string}  string  "Successfully delete cart item."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/cart/item [delete]
func (h *Handlers) DeleteCartItem() filter.Filter {
	return filter.And(
		filter.Method(http.MethodDelete),
		h.cart(),
		filter.JSON(cartItemRefKey),
		func(c *gin.Context) error {
			req := cartItemRefKey.Value(c)
			if err := h.carts.DeleteItem(c.Request.Context(), cartTokenKey.Value(c), req.ShopID, req.ItemKey); err != nil {
				return err
			}
			return text(c, "Successfully delete cart item.")
		},
	)
}

// PlaceOrder godoc
// @ID          placeOrder
// @Summary     Place the order
// @Description Turns the cart's items for the shop into an order. A retry carrying the same Idempotency-Key is answered without placing a second order and is marked with Idempotent-Replayed.
// @Tags        Cart
// @Accept      json
// @Produce     plain
// @Param       Idempotency-Key  header  string  false  "Client-chosen retry key"
// @Param       body             body    handlers.ShopRef  true  "Shop"
// @Success     200  {string}  string  "Successfully create order."
// @Header      200  {string}  Idempotent-Replayed  "true on a replay"
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / NoValidCookie / CartItemExpired / OperationFailed"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/cart/order [post]
func (h *Handlers) PlaceOrder() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.cart(),
		filter.JSON(shopRefKey),
		func(c *gin.Context) error {
			key, _ := middleware.GetIdempotencyKey(c)
			replayed, err := h.carts.PlaceOrder(c.Request.Context(), cartTokenKey.Value(c), shopRefKey.Value(c).ShopID, key)
			if err != nil {
				return err
			}
			if replayed {
				c.Header(HeaderIdempotentReplayed, "true")
			}
			return text(c, "Successfully create order.")
		},
	)
}
