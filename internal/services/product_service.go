package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/assets"
	"github.com/pigskit/pigskit-server/internal/domain"
	"github.com/pigskit/pigskit-server/internal/repo"
)

// ProductUpdate carries the optional parts of a product edit.
type ProductUpdate struct {
	Payload     *string
	Image       []byte // nil when absent
	DeleteImage bool
}

// ProductService manages shop products and their pictures. Every write
// requires the caller to hold the "all" permission on product_authority.
type ProductService struct {
	DB     *gorm.DB
	Assets assets.Store
}

// requireProductWrite fails with Unauthorized unless user may edit the
// products of shop.
func requireProductWrite(ctx context.Context, db *gorm.DB, shop, user uuid.UUID) error {
	ok, err := repo.HasAuthority(ctx, db, shop, user, domain.AuthorityProduct, domain.PermissionAll)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.Unauthorized()
	}
	return nil
}

// requireProduct fails with DataNotFound unless shop lists product.
func requireProduct(ctx context.Context, db *gorm.DB, shop, product uuid.UUID) error {
	ok, err := repo.ProductExists(ctx, db, shop, product)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.DataNotFound("product")
	}
	return nil
}

// Create adds a product to shop and stores its picture when given. The
// database work and the picture write succeed or fail together.
func (s *ProductService) Create(ctx context.Context, user, shop uuid.UUID, payload string, image []byte) (key uuid.UUID, err error) {
	ctx, span := startSpan(ctx, "ProductService", "Create",
		attribute.String("shop.id", shop.String()),
		attribute.String("user.id", user.String()))
	defer func() { endSpan(span, err) }()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProductWrite(ctx, tx, shop, user); err != nil {
			return err
		}
		k, err := repo.CreateProduct(ctx, tx, shop, payload)
		if err != nil {
			return err
		}
		if image != nil {
			if err := repo.SetProductHasPicture(ctx, tx, shop, k, true); err != nil {
				return err
			}
			if err := s.Assets.Put(ctx, assets.ProductImageKey(shop, k), image); err != nil {
				return err
			}
		}
		key = k
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return key, nil
}

// Update applies the present parts of u to a product. Deleting the picture
// takes precedence over replacing it.
func (s *ProductService) Update(ctx context.Context, user, shop, product uuid.UUID, u ProductUpdate) (err error) {
	ctx, span := startSpan(ctx, "ProductService", "Update",
		attribute.String("shop.id", shop.String()),
		attribute.String("product.key", product.String()))
	defer func() { endSpan(span, err) }()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProductWrite(ctx, tx, shop, user); err != nil {
			return err
		}
		if u.Payload != nil {
			if err := repo.UpdateProduct(ctx, tx, shop, product, *u.Payload); err != nil {
				return err
			}
		}
		switch {
		case u.DeleteImage:
			if err := repo.SetProductHasPicture(ctx, tx, shop, product, false); err != nil {
				return err
			}
			return s.Assets.Delete(ctx, assets.ProductImageKey(shop, product))
		case u.Image != nil:
			if err := repo.SetProductHasPicture(ctx, tx, shop, product, true); err != nil {
				return err
			}
			return s.Assets.Put(ctx, assets.ProductImageKey(shop, product), u.Image)
		}
		return nil
	})
}

// Delete removes a product and every stored asset of it. Asset cleanup
// failures are logged, not returned.
func (s *ProductService) Delete(ctx context.Context, user, shop, product uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "ProductService", "Delete",
		attribute.String("shop.id", shop.String()),
		attribute.String("product.key", product.String()))
	defer func() { endSpan(span, err) }()

	if err := requireProductWrite(ctx, s.DB, shop, user); err != nil {
		return err
	}
	if err := repo.DeleteProduct(ctx, s.DB, shop, product); err != nil {
		return err
	}
	if derr := s.Assets.DeleteAll(ctx, assets.ProductDir(shop, product)); derr != nil {
		log.Ctx(ctx).Warn().Err(derr).Str("shop_id", shop.String()).Msg("product assets not removed")
	}
	return nil
}

// Image returns a product's picture. With fallback set, a product without
// one gets the default picture.
func (s *ProductService) Image(ctx context.Context, shop, product uuid.UUID, fallback bool) (data []byte, err error) {
	ctx, span := startSpan(ctx, "ProductService", "Image",
		attribute.String("shop.id", shop.String()),
		attribute.String("product.key", product.String()))
	defer func() { endSpan(span, err) }()

	key := assets.ProductImageKey(shop, product)
	if fallback {
		data, err = assets.GetOr(ctx, s.Assets, key, assets.DefaultProductImage)
	} else {
		data, err = s.Assets.Get(ctx, key)
	}
	if errors.Is(err, assets.ErrNotFound) {
		return nil, apierr.DataNotFound("image")
	}
	return data, err
}

// PutImage replaces the picture of an existing product without touching
// the product record.
func (s *ProductService) PutImage(ctx context.Context, user, shop, product uuid.UUID, image []byte) (err error) {
	ctx, span := startSpan(ctx, "ProductService", "PutImage",
		attribute.String("shop.id", shop.String()),
		attribute.String("product.key", product.String()))
	defer func() { endSpan(span, err) }()

	if err := requireProductWrite(ctx, s.DB, shop, user); err != nil {
		return err
	}
	if err := requireProduct(ctx, s.DB, shop, product); err != nil {
		return err
	}
	return s.Assets.Put(ctx, assets.ProductImageKey(shop, product), image)
}

// DeleteImage removes the picture of an existing product.
func (s *ProductService) DeleteImage(ctx context.Context, user, shop, product uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "ProductService", "DeleteImage",
		attribute.String("shop.id", shop.String()),
		attribute.String("product.key", product.String()))
	defer func() { endSpan(span, err) }()

	if err := requireProductWrite(ctx, s.DB, shop, user); err != nil {
		return err
	}
	if err := requireProduct(ctx, s.DB, shop, product); err != nil {
		return err
	}
	return s.Assets.Delete(ctx, assets.ProductImageKey(shop, product))
}
