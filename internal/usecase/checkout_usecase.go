package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/cart"
	"storefront/internal/domain/model"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// チェックアウトの配送先フォーム入力。
type ShippingInput struct {
	FullName   string `validate:"required,max=255"`
	Address    string `validate:"required,max=255"`
	City       string `validate:"required,max=100"`
	PostalCode string `validate:"required,max=20"`
	Phone      string `validate:"omitempty,max=30"`
}

// フォーム検証の約束。失敗したフィールドとメッセージを返す。
type ShippingValidator interface {
	Validate(in ShippingInput) map[string]string
}

// CheckoutUsecase は可変なカートを不変な注文に変える唯一の場所。
// 値付け→検証→1トランザクションでの書き込み→カートクリアの順で進む。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	carts     *cart.Service
	validator ShippingValidator
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	carts *cart.Service,
	validator ShippingValidator,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		products:  products,
		carts:     carts,
		validator: validator,
	}
}

type CheckoutLineOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// 確定前の表示用見積り。
type CheckoutPreviewOutput struct {
	Lines   []CheckoutLineOutput `json:"lines"`
	Total   decimal.Decimal      `json:"total"`
	Missing []int64              `json:"missing,omitempty"`
}

type PlaceOrderOutput struct {
	OrderID     int64                `json:"order_id"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Status      string               `json:"status"`
	Lines       []CheckoutLineOutput `json:"lines"`
	//確定時にカタログから消えていて注文に入らなかった商品ID
	Missing   []int64   `json:"missing,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Preview は確認画面用にカートを現在価格で見積もる。何も書き込まない。
func (u *CheckoutUsecase) Preview(ctx context.Context, sessionID string) (CheckoutPreviewOutput, error) {
	snap, err := u.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return CheckoutPreviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(snap) == 0 {
		return CheckoutPreviewOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	quote, err := pricing.Price(ctx, snap, u.products)
	if err != nil {
		return CheckoutPreviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toPreviewOutput(quote), nil
}

// PlaceOrder はチェックアウトを確定する。
//
// カートが空なら何も書かずに弾く。フォームが不正ならフィールドエラーを
// 返してカートはそのまま。書き込みは注文ヘッダと全明細で1トランザク
// ションで、途中で失敗したら全部rollbackされる。カートを空にするのは
// commitが成り立った後だけ。失敗時はカートが残るのでやり直せる。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, sessionID string, in ShippingInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	snap, err := u.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(snap) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	//配送先の検証は値付けとは独立。失敗してもカートは触らない
	if fields := u.validator.Validate(in); len(fields) > 0 {
		return PlaceOrderOutput{}, NewValidationError(fields)
	}

	var out PlaceOrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//確定時にもう一度カタログから値付けし直す。
		//表示時の金額もクライアントの申告値も信用しない
		quote, err := pricing.Price(ctx, snap, r.Products())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(quote.Lines) == 0 {
			//カートの中身が全部カタログから消えていた
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:      userID,
			FullName:    in.FullName,
			Address:     in.Address,
			City:        in.City,
			PostalCode:  in.PostalCode,
			Phone:       in.Phone,
			Status:      model.OrderStatusPending,
			TotalAmount: quote.Total,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細は注文時点の価格・商品名のコピーを持つ
		items := make([]model.OrderItem, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			items = append(items, model.OrderItem{
				ProductID:           line.ProductID,
				ProductNameSnapshot: line.Name,
				PriceSnapshot:       line.UnitPrice,
				Quantity:            line.Quantity,
				CreatedAt:           now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PlaceOrderOutput{
			OrderID:     orderID,
			TotalAmount: quote.Total,
			Status:      string(model.OrderStatusPending),
			Lines:       toLineOutputs(quote.Lines),
			Missing:     quote.Missing,
			CreatedAt:   now,
		}
		return nil
	})

	if err != nil {
		//rollback済み。カートは残っているのでユーザーは再試行できる
		return PlaceOrderOutput{}, err
	}

	//commitが成り立った後にだけカートを空にする
	if err := u.carts.Clear(ctx, sessionID); err != nil {
		//注文自体は確定している。クリア失敗で注文は取り消さない
		return out, nil
	}

	return out, nil
}

func toLineOutputs(lines []pricing.Line) []CheckoutLineOutput {
	outs := make([]CheckoutLineOutput, 0, len(lines))
	for _, l := range lines {
		outs = append(outs, CheckoutLineOutput{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return outs
}

func toPreviewOutput(q pricing.Quote) CheckoutPreviewOutput {
	return CheckoutPreviewOutput{
		Lines:   toLineOutputs(q.Lines),
		Total:   q.Total,
		Missing: q.Missing,
	}
}
