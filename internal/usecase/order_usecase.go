package usecase

import (
	"context"
	"crypto/rand"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemOutput struct {
	VariantID int64           `json:"variant_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	TransactionID string            `json:"transaction_id"`
	Status        string            `json:"status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// Checkout は永続カートを注文へ確定する。
// 注文作成・明細作成・カートのクリアを1つのトランザクションで行う。
// 明細の price はこの時点のカタログ価格で凍結し、以後変わらない。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//明細のスナップショットを作る
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			v, err := r.Variants().FindByID(ctx, ci.VariantID)
			if err == repo.ErrNotFound {
				//消えたバリアントの行はスキップ
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//この瞬間の価格で凍結
			price := v.FinalPrice()

			orderItems = append(orderItems, model.OrderItem{
				VariantID: ci.VariantID,
				Price:     price,
				Quantity:  ci.Quantity,
			})

			total = total.Add(price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		if len(orderItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//注文作成。注文番号のunique衝突は作り直して再試行
		var orderID int64
		var txID string
		created := false

		for attempt := 0; attempt < 3; attempt++ {
			txID, err = newTransactionID()
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "internal error")
			}

			uid := userID
			orderID, err = r.Orders().Create(ctx, model.Order{
				UserID:        &uid,
				TransactionID: txID,
				Status:        model.OrderStatusPending,
				TotalAmount:   total,
			})
			if err == nil {
				created = true
				break
			}
		}
		if !created {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートは空にする。カート行自体は次回のために残す
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:            orderID,
			TransactionID: txID,
			Status:        string(model.OrderStatusPending),
			TotalAmount:   total,
			CreatedAt:     time.Now(),
			Items:         toOrderItemOutputs(orderItems),
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 注文番号で1件取得。他人の注文は「存在しない扱い」
func (u *OrderUsecase) GetMyOrderByTransactionID(ctx context.Context, userID int64, transactionID string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if transactionID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid transaction id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByTransactionID(ctx, transactionID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID == nil || *o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	return OrderOutput{
		ID:            o.ID,
		TransactionID: o.TransactionID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
		Items:         toOrderItemOutputs(items),
	}
}

func toOrderItemOutputs(items []model.OrderItem) []OrderItemOutput {
	outs := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, OrderItemOutput{
			VariantID: it.VariantID,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return outs
}

const transactionIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const transactionIDLen = 12

// 英大文字+数字の12桁の注文番号を作る
func newTransactionID() (string, error) {
	b := make([]byte, transactionIDLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = transactionIDChars[int(b[i])%len(transactionIDChars)]
	}
	return string(b), nil
}
