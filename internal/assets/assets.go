// Package assets stores binary assets (avatars, product images) under
// slash-separated keys of the form <kind>/<id>/.../<asset>.
//
// Two backends are provided: Local keeps files below a root directory and
// S3 keeps objects in one bucket of an S3-compatible service.
package assets

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no asset exists under the key.
var ErrNotFound = errors.New("assets: not found")

// ErrInvalidKey is returned for keys that are empty or escape the store.
var ErrInvalidKey = errors.New("assets: invalid key")

// Store reads and writes assets by key.
type Store interface {
	// Put creates or replaces the asset at key.
	Put(ctx context.Context, key string, data []byte) error
	// Get returns the asset at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the asset at key. A missing asset is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteAll removes every asset below prefix.
	DeleteAll(ctx context.Context, prefix string) error
}

// Key joins parts into a store key.
func Key(parts ...string) string { return path.Join(parts...) }

const (
	avatarName = "avatar.jpg"
	imageName  = "image.jpg"
)

// Fallback assets served when an entity has none of its own.
var (
	DefaultAvatar       = Key("default", "user", avatarName)
	DefaultProductImage = Key("default", "shop", "product", imageName)
)

// AvatarKey is the key of user's avatar.
func AvatarKey(user uuid.UUID) string {
	return Key("user", user.String(), avatarName)
}

// ProductDir is the prefix holding every asset of one product.
func ProductDir(shop, product uuid.UUID) string {
	return Key("shop", shop.String(), "product", product.String())
}

// ProductImageKey is the key of a product's picture.
func ProductImageKey(shop, product uuid.UUID) string {
	return Key(ProductDir(shop, product), imageName)
}

// GetOr returns the asset at key, falling back to the asset at fallback
// when the first is missing.
func GetOr(ctx context.Context, s Store, key, fallback string) ([]byte, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return s.Get(ctx, fallback)
	}
	return data, err
}

// cleanKey validates key and returns its canonical form.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.TrimSpace(key))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.Contains(key, "..") || strings.ContainsRune(key, '\\') {
		return "", ErrInvalidKey
	}
	return k, nil
}
