package cart

import (
	"encoding/json"
	"strconv"
)

// Snapshot はある時点のカート内容（product_id → 数量）。
type Snapshot map[int64]int64

// Cart はセッション1つ分の買い物カゴ。
// 商品IDごとの数量だけを持ち、価格は持たない（価格はカタログが正）。
type Cart struct {
	items map[int64]int64
}

func New() *Cart {
	return &Cart{items: map[int64]int64{}}
}

// Add は数量を1増やす。無ければ1で作る。
// カタログの存在チェックはしない（チェックアウト時に弾く）。
func (c *Cart) Add(productID int64) {
	c.items[productID]++
}

// Remove は明細ごと削除する。無ければ何もしない。
// 数量の部分減算はサポートしない。
func (c *Cart) Remove(productID int64) {
	delete(c.items, productID)
}

// Snapshot は現在の内容のコピーを返す。呼んでも状態は変わらない。
func (c *Cart) Snapshot() Snapshot {
	snap := make(Snapshot, len(c.items))
	for id, qty := range c.items {
		snap[id] = qty
	}
	return snap
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Quantity(productID int64) int64 {
	return c.items[productID]
}

// Clear は全明細を消す。チェックアウト確定後にだけ呼ぶ。
func (c *Cart) Clear() {
	c.items = map[int64]int64{}
}

// Encode はセッション保存用のJSON文字列にする。
// JSONのキーは文字列なのでproduct_idは10進文字列になる。
func (c *Cart) Encode() (string, error) {
	m := make(map[string]int64, len(c.items))
	for id, qty := range c.items {
		m[strconv.FormatInt(id, 10)] = qty
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode はセッションのJSON文字列からカートを復元する。
// 壊れた値や不正なキーはエラーにして、呼び出し側で空カート扱いにする。
func Decode(raw string) (*Cart, error) {
	c := New()
	if raw == "" {
		return c, nil
	}

	var m map[string]int64
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}

	for k, qty := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, err
		}
		if qty < 1 {
			continue
		}
		c.items[id] = qty
	}
	return c, nil
}
