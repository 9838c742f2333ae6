package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

// email重複を統一的に扱う
var ErrEmailTaken = errors.New("email already taken")

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	//最終ログイン時刻の更新
	TouchLastLogin(ctx context.Context, userID int64) error
}
