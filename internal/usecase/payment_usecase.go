package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 支払い承認のイベント種別（PayPal互換）
const EventTypeOrderApproved = "CHECKOUT.ORDER.APPROVED"

type PaymentUsecase struct {
	tx repo.TransactionManager
}

func NewPaymentUsecase(tx repo.TransactionManager) *PaymentUsecase {
	return &PaymentUsecase{tx: tx}
}

type WebhookInput struct {
	EventType     string
	TransactionID string
}

// HandleWebhook は支払い確認イベントを処理する。
// 承認イベントで注文が pending なら paid に遷移し、明細ぶんの在庫を減らす。
// 知らない注文番号・対象外のイベントは黙って無視する（成功扱い）。
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, in WebhookInput) error {
	if in.EventType != EventTypeOrderApproved || in.TransactionID == "" {
		return nil
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByTransactionID(ctx, in.TransactionID)
		if err == repo.ErrNotFound {
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//pending以外は二重配送とみなして何もしない
		if order.Status != model.OrderStatusPending {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫は足りるときだけ減らす。足りない場合は記録だけ残して減らさない
		for _, it := range items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.VariantID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			adj := model.StockAdjustment{
				VariantID: it.VariantID,
				Delta:     -it.Quantity,
				Reason:    fmt.Sprintf("order %s paid", order.TransactionID),
			}
			if !ok {
				adj.Delta = 0
				adj.Reason = fmt.Sprintf("insufficient stock for order %s", order.TransactionID)
			}

			if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		return nil
	})
}
