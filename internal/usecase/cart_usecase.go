package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
	"app/internal/session"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
// 匿名ならセッションカート、ログイン済みなら永続カートに振り分ける。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	variantRepo  repo.VariantRepository
	sessions     session.Store
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	variantRepo repo.VariantRepository,
	sessions session.Store,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		variantRepo:  variantRepo,
		sessions:     sessions,
	}
}

// リクエストの持ち主。UserIDがnilなら匿名
type CartIdentity struct {
	UserID    *int64
	SessionID string
}

type CartItemResponse struct {
	VariantID int64           `json:"variant_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int64              `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`

	//永続カートかどうか
	Persistent bool `json:"persistent"`
}

type AddCartInput struct {
	VariantID int64
	Quantity  int64
	Override  bool
}

func (u *CartUsecase) sessionCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	return LoadSessionCart(ctx, u.sessions, u.variantRepo, sessionID)
}

// GetCart はカートの現在の中身を返す
func (u *CartUsecase) GetCart(ctx context.Context, ident CartIdentity) (CartResponse, error) {
	if ident.UserID != nil {
		return u.persistedCartResponse(ctx, *ident.UserID)
	}
	return u.sessionCartResponse(ctx, ident.SessionID)
}

// AddToCart はカートに追加する。
// セッションカートは override 可、永続カートは常に加算。
func (u *CartUsecase) AddToCart(ctx context.Context, ident CartIdentity, in AddCartInput) (CartResponse, error) {
	if in.VariantID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if ident.UserID == nil {
		cart, err := u.sessionCart(ctx, ident.SessionID)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
		}
		if err := cart.Add(ctx, in.VariantID, in.Quantity, in.Override); err != nil {
			if err == repo.ErrNotFound {
				return CartResponse{}, NewHTTPError(http.StatusNotFound, "variant not found")
			}
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
		}
		return u.buildSessionResponse(ctx, cart)
	}

	//バリアント存在チェック
	if _, err := u.variantRepo.FindByID(ctx, in.VariantID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "variant not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, *ident.UserID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpsertByCartAndVariant(ctx, cart.ID, in.VariantID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.persistedCartResponse(ctx, *ident.UserID)
}

// RemoveFromCart は行を消す。無くてもエラーにしない
func (u *CartUsecase) RemoveFromCart(ctx context.Context, ident CartIdentity, variantID int64) (CartResponse, error) {
	if variantID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
	}

	if ident.UserID == nil {
		cart, err := u.sessionCart(ctx, ident.SessionID)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
		}
		if err := cart.Remove(ctx, variantID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
		}
		return u.buildSessionResponse(ctx, cart)
	}

	cart, err := u.cartRepo.FindByUserID(ctx, *ident.UserID)
	if err == repo.ErrNotFound {
		//カート自体が無いなら消すものも無い
		return CartResponse{Items: []CartItemResponse{}, TotalPrice: decimal.Zero, Persistent: true}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByCartAndVariant(ctx, cart.ID, variantID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.persistedCartResponse(ctx, *ident.UserID)
}

// MergeOnLogin はログイン成功時に1回だけ呼ばれる。
// セッションカートの行を永続カートへ加算で畳み込み、セッション側は必ず空にする。
// 行をまたぐアトミック性は保証しない（1ユーザーの低リスクなマージのため）。
func (u *CartUsecase) MergeOnLogin(ctx context.Context, sessionID string, userID int64) error {
	if sessionID == "" {
		return nil
	}

	sessionCart, err := u.sessionCart(ctx, sessionID)
	if err != nil {
		return err
	}

	//解決できない行はここで落ちる
	items, err := sessionCart.Items(ctx)
	if err != nil {
		return err
	}

	if len(items) > 0 {
		cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
		if err != nil {
			return err
		}

		for _, item := range items {
			//新規なら数量セット、既存なら加算
			if err := u.cartItemRepo.UpsertByCartAndVariant(ctx, cart.ID, item.Variant.ID, item.Quantity); err != nil {
				return err
			}
		}
	}

	//0行でも無条件にクリアする
	return sessionCart.Clear(ctx)
}

// セッションカートのビューを作る
func (u *CartUsecase) sessionCartResponse(ctx context.Context, sessionID string) (CartResponse, error) {
	cart, err := u.sessionCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return u.buildSessionResponse(ctx, cart)
}

func (u *CartUsecase) buildSessionResponse(ctx context.Context, cart *SessionCart) (CartResponse, error) {
	items, err := cart.Items(ctx)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		respItems = append(respItems, CartItemResponse{
			VariantID: item.Variant.ID,
			SKU:       item.Variant.SKU,
			Name:      item.Variant.Product.Name + " " + item.Variant.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.TotalPrice,
		})
	}

	return CartResponse{
		Items:      respItems,
		TotalItems: cart.Len(),
		TotalPrice: cart.TotalPrice(),
		Persistent: false,
	}, nil
}

// 永続カートのビューを作る。価格は常にカタログの現在値
func (u *CartUsecase) persistedCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.VariantID)
	}

	variants, err := u.variantRepo.ListByIDs(ctx, ids)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID := make(map[int64]int, len(variants))
	for i, v := range variants {
		byID[v.ID] = i
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var totalItems int64 = 0
	totalPrice := decimal.Zero

	for _, it := range items {
		idx, ok := byID[it.VariantID]
		if !ok {
			//バリアントが消えた行は表示しない
			continue
		}
		v := variants[idx]
		if !v.Product.IsActive {
			continue
		}

		price := v.FinalPrice()
		subtotal := price.Mul(decimal.NewFromInt(it.Quantity))

		respItems = append(respItems, CartItemResponse{
			VariantID: v.ID,
			SKU:       v.SKU,
			Name:      v.Product.Name + " " + v.Name,
			Price:     price,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
		})

		totalItems += it.Quantity
		totalPrice = totalPrice.Add(subtotal)
	}

	return CartResponse{
		Items:      respItems,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		Persistent: true,
	}, nil
}
