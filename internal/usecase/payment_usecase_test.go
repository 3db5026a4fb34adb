package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkout済みの注文を1件作る
func seedPaidableOrder(t *testing.T, w *fakeWorld, userID int64, lines map[int64]int64) string {
	t.Helper()

	seedPersistedCart(t, w, userID, lines)
	out, err := NewOrderUsecase(w.tx).Checkout(context.Background(), userID)
	require.NoError(t, err)
	return out.TransactionID
}

func TestHandleWebhook_MarksPaidAndDecrementsStock(t *testing.T) {
	ctx := context.Background()
	w := newFakeWorld(testVariant(1, "10.00", 5))
	txID := seedPaidableOrder(t, w, 7, map[int64]int64{1: 2})

	uc := NewPaymentUsecase(w.tx)

	err := uc.HandleWebhook(ctx, WebhookInput{
		EventType:     EventTypeOrderApproved,
		TransactionID: txID,
	})
	require.NoError(t, err)

	order, err := w.orders.FindByTransactionID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)

	//在庫 5 - 2 = 3
	assert.Equal(t, int64(3), w.variants.variants[1].Stock)

	require.Len(t, w.inventory.adjustments, 1)
	assert.Equal(t, int64(-2), w.inventory.adjustments[0].Delta)
}

func TestHandleWebhook_UnknownTransactionIsSilentSuccess(t *testing.T) {
	ctx := context.Background()
	w := newFakeWorld()

	uc := NewPaymentUsecase(w.tx)

	err := uc.HandleWebhook(ctx, WebhookInput{
		EventType:     EventTypeOrderApproved,
		TransactionID: "NOSUCHORDER1",
	})
	assert.NoError(t, err)
}

func TestHandleWebhook_IgnoresOtherEventTypes(t *testing.T) {
	ctx := context.Background()
	w := newFakeWorld(testVariant(1, "10.00", 5))
	txID := seedPaidableOrder(t, w, 7, map[int64]int64{1: 2})

	uc := NewPaymentUsecase(w.tx)

	err := uc.HandleWebhook(ctx, WebhookInput{
		EventType:     "CHECKOUT.ORDER.DECLINED",
		TransactionID: txID,
	})
	require.NoError(t, err)

	order, err := w.orders.FindByTransactionID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, int64(5), w.variants.variants[1].Stock)
}

func TestHandleWebhook_SecondDeliveryIsNoop(t *testing.T) {
	ctx := context.Background()
	w := newFakeWorld(testVariant(1, "10.00", 5))
	txID := seedPaidableOrder(t, w, 7, map[int64]int64{1: 2})

	uc := NewPaymentUsecase(w.tx)

	in := WebhookInput{EventType: EventTypeOrderApproved, TransactionID: txID}
	require.NoError(t, uc.HandleWebhook(ctx, in))
	require.NoError(t, uc.HandleWebhook(ctx, in))

	//二重配送で在庫が二度減らない
	assert.Equal(t, int64(3), w.variants.variants[1].Stock)
	assert.Len(t, w.inventory.adjustments, 1)
}

func TestHandleWebhook_InsufficientStockIsRecorded(t *testing.T) {
	ctx := context.Background()
	w := newFakeWorld(testVariant(1, "10.00", 1))
	txID := seedPaidableOrder(t, w, 7, map[int64]int64{1: 5})

	uc := NewPaymentUsecase(w.tx)

	err := uc.HandleWebhook(ctx, WebhookInput{
		EventType:     EventTypeOrderApproved,
		TransactionID: txID,
	})
	require.NoError(t, err)

	//支払いは成立し、在庫はそのまま
	order, err := w.orders.FindByTransactionID(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, order.Status)
	assert.Equal(t, int64(1), w.variants.variants[1].Stock)

	require.Len(t, w.inventory.adjustments, 1)
	assert.Equal(t, int64(0), w.inventory.adjustments[0].Delta)
	assert.Contains(t, w.inventory.adjustments[0].Reason, "insufficient stock")
}

func TestHandleWebhook_MixedStockOutcome(t *testing.T) {
	ctx := context.Background()
	w := newFakeWorld(testVariant(1, "10.00", 5), testVariant(2, "4.00", 0))
	txID := seedPaidableOrder(t, w, 7, map[int64]int64{1: 2, 2: 1})

	uc := NewPaymentUsecase(w.tx)

	err := uc.HandleWebhook(ctx, WebhookInput{
		EventType:     EventTypeOrderApproved,
		TransactionID: txID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), w.variants.variants[1].Stock)
	assert.Equal(t, int64(0), w.variants.variants[2].Stock)

	require.Len(t, w.inventory.adjustments, 2)
}
