package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文の明細。
// 注文時点の商品名と価格をコピーで持つ。Productへの参照ではない。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	PriceSnapshot       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
