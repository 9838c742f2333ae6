package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// ウィッシュリストの保存・取得の窓口
type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	Exists(ctx context.Context, userID int64, productID int64) (bool, error)
	Add(ctx context.Context, userID int64, productID int64) error
	Remove(ctx context.Context, userID int64, productID int64) error
}
