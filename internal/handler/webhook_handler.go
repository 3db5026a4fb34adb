package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 署名ヘッダ。bodyのHMAC-SHA256（hex）を運ぶ
const webhookSignatureHeader = "X-Webhook-Signature"

// 支払い確認webhookの受け口。
// 共有シークレットの署名検証を通ったリクエストだけ処理する。
type WebhookHandler struct {
	uc     *usecase.PaymentUsecase
	secret []byte
}

func NewWebhookHandler(uc *usecase.PaymentUsecase, secret string) *WebhookHandler {
	return &WebhookHandler{uc: uc, secret: []byte(secret)}
}

type webhookPayload struct {
	EventType string `json:"event_type"`
	Resource  struct {
		InvoiceID string `json:"invoice_id"`
	} `json:"resource"`
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payments/webhook", h.handle)
}

func (h *WebhookHandler) handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if !h.verifySignature(body, c.Request().Header.Get(webhookSignatureHeader)) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid signature"})
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	if err := h.uc.HandleWebhook(c.Request().Context(), usecase.WebhookInput{
		EventType:     payload.EventType,
		TransactionID: payload.Resource.InvoiceID,
	}); err != nil {
		return writeError(c, err)
	}

	//知らない注文番号でも成功で返す
	return c.String(http.StatusOK, "OK")
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
