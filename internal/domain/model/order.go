package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 確定済み注文のヘッダ。作成後は変更しない。
// 配送先はチェックアウトフォームの入力をそのまま持つ。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	FullName    string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Address     string          `gorm:"type:varchar(255);not null" json:"address"`
	City        string          `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode  string          `gorm:"type:varchar(20);not null" json:"postal_code"`
	Phone       string          `gorm:"type:varchar(30)" json:"phone"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
