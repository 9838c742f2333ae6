package usecase

import (
	"context"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"
	"storefront/internal/session"
)

// CartUsecase はセッションカートの業務ロジック。
// カート自体は数量しか持たず、表示用の金額は毎回カタログから引き直す。
type CartUsecase struct {
	carts    *cart.Service
	products repo.ProductRepository
	sessions session.Store
}

func NewCartUsecase(carts *cart.Service, products repo.ProductRepository, sessions session.Store) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		products: products,
		sessions: sessions,
	}
}

type CartLineOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartOutput struct {
	Lines    []CartLineOutput `json:"lines"`
	Total    string           `json:"total"`
	Missing  []int64          `json:"missing,omitempty"`
	Messages []string         `json:"messages"`
}

// GetCart はカートの表示。溜まっているフラッシュメッセージも返して消す。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartOutput, error) {
	snap, err := u.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	quote, err := pricing.Price(ctx, snap, u.products)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	msgs, err := session.PopFlashes(ctx, u.sessions, sessionID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]CartLineOutput, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, CartLineOutput{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal.StringFixed(2),
		})
	}

	return CartOutput{
		Lines:    lines,
		Total:    quote.Total.StringFixed(2),
		Missing:  quote.Missing,
		Messages: msgs,
	}, nil
}

// AddItem は数量を1増やす。
// カタログの存在チェックはここではしない（チェックアウトで落とす）。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.carts.Add(ctx, sessionID, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//次の表示で出すメッセージ
	if err := session.AddFlash(ctx, u.sessions, sessionID, "Item added to cart!"); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// RemoveItem は明細ごと消す。元々カートに無くてもエラーにしない。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.carts.Remove(ctx, sessionID, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
