package pricing

import (
	"context"
	"sort"

	"storefront/internal/cart"
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// カタログから現在価格を引くための約束。
// ProductRepositoryがこれを満たす。
type CatalogLookup interface {
	ListByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

// 見積りの1行。価格はすべてカタログの現在値から導出する。
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Quote はカート全体の見積り。
// Missing はカタログに居ない（または非公開の）商品ID。
// 明細からは除外して、呼び出し側が不整合として表に出す。
type Quote struct {
	Lines   []Line          `json:"lines"`
	Total   decimal.Decimal `json:"total"`
	Missing []int64         `json:"missing,omitempty"`
}

// Price はカートのスナップショットを現在のカタログ価格で値付けする。
// クライアント側から渡ってきた価格や過去の見積りは一切信用しない。
// 表示時とチェックアウト確定時の2回呼ばれる。
func Price(ctx context.Context, snap cart.Snapshot, lookup CatalogLookup) (Quote, error) {
	quote := Quote{Lines: []Line{}, Total: decimal.Zero}
	if len(snap) == 0 {
		return quote, nil
	}

	ids := make([]int64, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	//mapの順序は不定なので出力を安定させる
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := lookup.ListByIDs(ctx, ids)
	if err != nil {
		return Quote{}, err
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range ids {
		qty := snap[id]
		p, ok := byID[id]
		if !ok || !p.IsActive {
			//カタログ側が正。消えた商品は明細から落とす
			quote.Missing = append(quote.Missing, id)
			continue
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(qty))
		quote.Lines = append(quote.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  qty,
			Subtotal:  subtotal,
		})
		quote.Total = quote.Total.Add(subtotal)
	}

	return quote, nil
}
