// Shop HTTP handlers.
//
// This file exposes shop administration and the product catalogue:
//   - /api/shop                    create a shop
//   - /api/shop/member             add a member
//   - /api/shop/member/authority   grant a permission
//   - /api/shop/product            create, update, delete a product
//   - /api/shop/product/image      product image download
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/domain"
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/http/session"
	"github.com/pigskit/pigskit-server/internal/services"
	"github.com/pigskit/pigskit-server/internal/utils"
)

//
// DTOs
//

// CreateShopRequest is the JSON payload for creating a shop.
type CreateShopRequest struct {
	ShopName string `json:"shop_name" binding:"required" example:"Pig's Kitchen"`
}

// MemberRequest names a shop member.
type MemberRequest struct {
	ShopID   uuid.UUID `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
	MemberID uuid.UUID `json:"member_id" binding:"required" swaggertype:"string" format:"uuid"`
}

// AuthorityRequest grants permission on one authority to a member.
type AuthorityRequest struct {
	ShopID     uuid.UUID         `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
	MemberID   uuid.UUID         `json:"member_id" binding:"required" swaggertype:"string" format:"uuid"`
	Authority  domain.Authority  `json:"authority" binding:"required,oneof=member_authority order_authority product_authority" enums:"member_authority,order_authority,product_authority"`
	Permission domain.Permission `json:"permission" binding:"required,oneof=none read-only all" enums:"none,read-only,all"`
}

// ProductRef names a product of a shop.
type ProductRef struct {
	ShopID     uuid.UUID `json:"shop_id" binding:"required" swaggertype:"string" format:"uuid"`
	ProductKey uuid.UUID `json:"product_key" binding:"required" swaggertype:"string" format:"uuid"`
}

// ProductQuery names a product in a query string.
type ProductQuery struct {
	ShopID     string `form:"shop_id" binding:"required" format:"uuid"`
	ProductKey string `form:"product_key" binding:"required" format:"uuid"`
}

// ids parses both identifiers, reporting the first malformed one as
// InvalidData.
func (q ProductQuery) ids() (shop, product uuid.UUID, err error) {
	if shop, err = utils.ParseID(q.ShopID); err != nil {
		return uuid.Nil, uuid.Nil, apierr.InvalidData("shop_id")
	}
	if product, err = utils.ParseID(q.ProductKey); err != nil {
		return uuid.Nil, uuid.Nil, apierr.InvalidData("product_key")
	}
	return shop, product, nil
}

var (
	createShopKey   = filter.NewKey[CreateShopRequest]("shop.create")
	memberKey       = filter.NewKey[MemberRequest]("shop.member")
	authorityKey    = filter.NewKey[AuthorityRequest]("shop.authority")
	productRefKey   = filter.NewKey[ProductRef]("product.ref")
	productQueryKey = filter.NewKey[ProductQuery]("product.query")
)

//
// Shop
//

// CreateShop godoc
// @ID          createShop
// @Summary     Create a shop
// @Description Creates a shop owned by the signed-in user.
// @Tags        Shop
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.CreateShopRequest  true  "Shop"
// @Success     200  {string}  string  "Successfully created shop."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / OperationFailed / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Failure     409  {object}  apierr.Envelope  "UniqueDataConflict"
// @Router      /api/shop [post]
func (h *Handlers) CreateShop() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.sessions.Required(session.User, userKey),
		filter.JSON(createShopKey),
		func(c *gin.Context) error {
			if err := h.shops.Create(c.Request.Context(), userKey.Value(c), createShopKey.Value(c).ShopName); err != nil {
				return err
			}
			return text(c, "Successfully created shop.")
		},
	)
}

// AddMember godoc
// @ID          addShopMember
// @Summary     Add a shop member
// @Description Adds a user to a shop. The caller needs full member authority.
// @Tags        Shop
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.MemberRequest  true  "Member"
// @Success     200  {string}  string  "Successfully added shop member."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / OperationFailed / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Router      /api/shop/member [post]
func (h *Handlers) AddMember() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.sessions.Required(session.User, userKey),
		filter.JSON(memberKey),
		func(c *gin.Context) error {
			req := memberKey.Value(c)
			if err := h.shops.AddMember(c.Request.Context(), userKey.Value(c), req.ShopID, req.MemberID); err != nil {
				return err
			}
			return text(c, "Successfully added shop member.")
		},
	)
}

// SetMemberAuthority godoc
// @ID          setShopMemberAuthority
// @Summary     Set a member's permission
// @Description Sets the member's permission on one authority. The caller needs full member authority.
// @Tags        Shop
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.AuthorityRequest  true  "Grant"
// @Success     200  {string}  string  "Successfully setted shop member authority."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / OperationFailed / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Router      /api/shop/member/authority [patch]
func (h *Handlers) SetMemberAuthority() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPatch),
		h.sessions.Required(session.User, userKey),
		filter.JSON(authorityKey),
		func(c *gin.Context) error {
			req := authorityKey.Value(c)
			err := h.shops.SetMemberAuthority(c.Request.Context(), userKey.Value(c),
				req.ShopID, req.MemberID, req.Authority, req.Permission)
			if err != nil {
				return err
			}
			return text(c, "Successfully setted shop member authority.")
		},
	)
}

//
// Product
//

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product
// @Description Creates a product from an opaque payload with an optional image. The caller needs full product authority.
// @Tags        Product
// @Accept      multipart/form-data
// @Produce     plain
// @Param       shop_id  formData  string  true   "Shop"  format(uuid)
// @Param       payload  formData  string  true   "Product payload"
// @Param       image    formData  file    false  "Product image"
// @Success     200  {string}  string  "Successfully created."
// @Failure     400  {object}  apierr.Envelope  "NoValidForm / OperationFailed / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Failure     413  {object}  apierr.Envelope  "PayloadTooLarge"
// @Router      /api/shop/product [post]
func (h *Handlers) CreateProduct() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.sessions.Required(session.User, userKey),
		h.productForm.Filter(formKey),
		func(c *gin.Context) error {
			v := formKey.Value(c)
			img, _ := v.OptBytes("image")
			_, err := h.products.Create(c.Request.Context(), userKey.Value(c), v.ID("shop_id"), v.Text("payload"), img)
			if err != nil {
				return err
			}
			return text(c, "Successfully created.")
		},
	)
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product
// @Description Replaces the payload and replaces or deletes the image. delete_image wins over image.
// @Tags        Product
// @Accept      multipart/form-data
// @Produce     plain
// @Param       shop_id       formData  string  true   "Shop"     format(uuid)
// @Param       product_key   formData  string  true   "Product"  format(uuid)
// @Param       payload       formData  string  false  "Product payload"
// @Param       delete_image  formData  bool    false  "Remove the image"
// @Param       image         formData  file    false  "Product image"
// @Success     200  {string}  string  "Successfully updated."
// @Failure     400  {object}  apierr.Envelope  "NoValidForm / OperationFailed / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Failure     413  {object}  apierr.Envelope  "PayloadTooLarge"
// @Router      /api/shop/product [patch]
func (h *Handlers) UpdateProduct() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPatch),
		h.sessions.Required(session.User, userKey),
		h.productPatchForm.Filter(formKey),
		func(c *gin.Context) error {
			v := formKey.Value(c)
			var u services.ProductUpdate
			if s, ok := v.OptText("payload"); ok {
				u.Payload = &s
			}
			u.Image, _ = v.OptBytes("image")
			u.DeleteImage, _ = v.OptBool("delete_image")

			err := h.products.Update(c.Request.Context(), userKey.Value(c), v.ID("shop_id"), v.ID("product_key"), u)
			if err != nil {
				return err
			}
			return text(c, "Successfully updated.")
		},
	)
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Delete a product
// @Description Deletes the product and its image.
// @Tags        Product
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.ProductRef  true  "Product"
// @Success     200  {string}  string  "Successfully deleted product."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / OperationFailed / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Router      /api/shop/product [delete]
func (h *Handlers) DeleteProduct() filter.Filter {
	return filter.And(
		filter.Method(http.MethodDelete),
		h.sessions.Required(session.User, userKey),
		filter.JSON(productRefKey),
		func(c *gin.Context) error {
			req := productRefKey.Value(c)
			if err := h.products.Delete(c.Request.Context(), userKey.Value(c), req.ShopID, req.ProductKey); err != nil {
				return err
			}
			return text(c, "Successfully deleted product.")
		},
	)
}

// ProductImage godoc
// @ID          productImage
// @Summary     Download a product image
// @Description Public. A product without an image is DataNotFound.
// @Tags        Product
// @Produce     image/jpeg
// @Param       shop_id      query  string  true  "Shop"     format(uuid)
// @Param       product_key  query  string  true  "Product"  format(uuid)
// @Success     200  {file}    binary
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData"
// @Failure     404  {object}  apierr.Envelope  "DataNotFound"
// @Router      /api/shop/product/image [get]
func (h *Handlers) ProductImage() filter.Filter {
	return h.productImage(false)
}

func (h *Handlers) productImage(fallback bool) filter.Filter {
	return filter.And(
		filter.Method(http.MethodGet),
		filter.Query(productQueryKey),
		func(c *gin.Context) error {
			shop, product, err := productQueryKey.Value(c).ids()
			if err != nil {
				return err
			}
			data, err := h.products.Image(c.Request.Context(), shop, product, fallback)
			if err != nil {
				return err
			}
			return image(c, data)
		},
	)
}
