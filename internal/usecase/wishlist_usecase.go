package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type WishlistToggleOutput struct {
	ProductID int64 `json:"product_id"`
	//トグル後に入っているかどうか
	Wished bool `json:"wished"`
}

type WishlistEntryOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// Toggle は入っていなければ追加、入っていれば削除する。
func (u *WishlistUsecase) Toggle(ctx context.Context, userID int64, productID int64) (WishlistToggleOutput, error) {
	if userID <= 0 {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	exists, err := u.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if exists {
		if err := u.wishlistRepo.Remove(ctx, userID, productID); err != nil {
			return WishlistToggleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return WishlistToggleOutput{ProductID: productID, Wished: false}, nil
	}

	if err := u.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return WishlistToggleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return WishlistToggleOutput{ProductID: productID, Wished: true}, nil
}

// List はウィッシュリストの中身を商品情報付きで返す。
// カタログから消えた商品は表示から落とす。
func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistEntryOutput, error) {
	if userID <= 0 {
		return []WishlistEntryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []WishlistEntryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return []WishlistEntryOutput{}, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := u.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return []WishlistEntryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	outs := make([]WishlistEntryOutput, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok || !p.IsActive {
			continue
		}
		outs = append(outs, WishlistEntryOutput{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price.StringFixed(2),
		})
	}
	return outs, nil
}
