// File-store handlers under /fs.
//
// These manage stored images directly. Reads fall back to the default
// image when none is stored.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/http/session"
)

// StoreAvatar godoc
// @ID          storeAvatar
// @Summary     Store the avatar
// @Tags        Files
// @Accept      multipart/form-data
// @Produce     plain
// @Param       avatar  formData  file  true  "Avatar"
// @Success     200  {string}  string  "Successfully stored."
// @Failure     400  {object}  apierr.Envelope  "NoValidForm / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Failure     413  {object}  apierr.Envelope  "PayloadTooLarge"
// @Router      /fs/user/avatar [post]
func (h *Handlers) StoreAvatar() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.sessions.Required(session.User, userKey),
		h.avatarForm.Filter(formKey),
		func(c *gin.Context) error {
			if err := h.profiles.PutAvatar(c.Request.Context(), userKey.Value(c), formKey.Value(c).Bytes("avatar")); err != nil {
				return err
			}
			return text(c, "Successfully stored.")
		},
	)
}

// Avatar godoc
// @ID          avatar
// @Summary     Download the avatar or the default one
// @Tags        Files
// @Produce     image/jpeg
// @Success     200  {file}    binary
// @Failure     400  {object}  apierr.Envelope  "NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /fs/user/avatar [get]
func (h *Handlers) Avatar() filter.Filter {
	return filter.And(
		filter.Method(http.MethodGet),
		h.sessions.Required(session.User, userKey),
		func(c *gin.Context) error {
			data, err := h.profiles.Avatar(c.Request.Context(), userKey.Value(c), true)
			if err != nil {
				return err
			}
			return image(c, data)
		},
	)
}

// DeleteAvatar godoc
// @ID          deleteAvatar
// @Summary     Delete the avatar
// @Tags        Files
// @Produce     plain
// @Success     200  {string}  string  "Successfully deleted."
// @Failure     400  {object}  apierr.Envelope  "NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /fs/user/avatar [delete]
func (h *Handlers) DeleteAvatar() filter.Filter {
	return filter.And(
		filter.Method(http.MethodDelete),
		h.sessions.Required(session.User, userKey),
		func(c *gin.Context) error {
			if err := h.profiles.DeleteAvatar(c.Request.Context(), userKey.Value(c)); err != nil {
				return err
			}
			return text(c, "Successfully deleted.")
		},
	)
}

// StoreProductImage godoc
// @ID          storeProductImage
// @Summary     Store a product image
// @Tags        Files
// @Accept      multipart/form-data
// @Produce     plain
// @Param       shop_id      formData  string  true  "Shop"     format(uuid)
// @Param       product_key  formData  string  true  "Product"  format(uuid)
// @Param       image        formData  file    true  "Image"
// @Success     200  {string}  string  "Successfully updated."
// @Failure     400  {object}  apierr.Envelope  "NoValidForm / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Failure     413  {object}  apierr.Envelope  "PayloadTooLarge"
// @Router      /fs/shop/product/image [post]
func (h *Handlers) StoreProductImage() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		h.sessions.Required(session.User, userKey),
		h.productImageForm.Filter(formKey),
		func(c *gin.Context) error {
			v := formKey.Value(c)
			err := h.products.PutImage(c.Request.Context(), userKey.Value(c), v.ID("shop_id"), v.ID("product_key"), v.Bytes("image"))
			if err != nil {
				return err
			}
			return text(c, "Successfully updated.")
		},
	)
}

// FileProductImage godoc
// @ID          fileProductImage
// @Summary     Download a product image or the default one
// @Tags        Files
// @Produce     image/jpeg
// @Param       shop_id      query  string  true  "Shop"     format(uuid)
// @Param       product_key  query  string  true  "Product"  format(uuid)
// @Success     200  {file}    binary
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData"
// @Router      /fs/shop/product/image [get]
func (h *Handlers) FileProductImage() filter.Filter {
	return h.productImage(true)
}

// DeleteProductImage godoc
// @ID          deleteProductImage
// @Summary     Delete a product image
// @Tags        Files
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.ProductRef  true  "Product"
// @Success     200  {string}  string  "Successfully deleted."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired / Unauthorized"
// @Router      /fs/shop/product/image [delete]
func (h *Handlers) DeleteProductImage() filter.Filter {
	return filter.And(
		filter.Method(http.MethodDelete),
		h.sessions.Required(session.User, userKey),
		filter.JSON(productRefKey),
		func(c *gin.Context) error {
			req := productRefKey.Value(c)
			if err := h.products.DeleteImage(c.Request.Context(), userKey.Value(c), req.ShopID, req.ProductKey); err != nil {
				return err
			}
			return text(c, "Successfully deleted.")
		},
	)
}
