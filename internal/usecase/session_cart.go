package usecase

import (
	"context"
	"encoding/json"
	"strconv"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/session"

	"github.com/shopspring/decimal"
)

// セッション内でカートblobを置くキー
const cartSessionKey = "cart"

// セッションカートの1行。
// price は追加時点のスナップショット（JSONでは "12.34" の文字列になる）。
type SessionLine struct {
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// バリアント解決済みの1件
type SessionCartItem struct {
	Variant    model.ProductVariant
	Quantity   int64
	Price      decimal.Decimal
	TotalPrice decimal.Decimal
}

// SessionCart は匿名訪問者のカート。
// ログイン状態とは無関係にセッションストアのblobだけを読み書きする。
type SessionCart struct {
	store     session.Store
	variants  repo.VariantRepository
	sessionID string

	// key はvariant idの10進文字列（JSONのmapキーは文字列のため）
	lines map[string]SessionLine
}

// LoadSessionCart はセッションからカートを読む。無ければ空で始める。
func LoadSessionCart(ctx context.Context, store session.Store, variants repo.VariantRepository, sessionID string) (*SessionCart, error) {
	lines := map[string]SessionLine{}

	raw, ok, err := store.Get(ctx, sessionID, cartSessionKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &lines); err != nil {
			// 壊れたblobは空として作り直す
			lines = map[string]SessionLine{}
		}
	}

	return &SessionCart{
		store:     store,
		variants:  variants,
		sessionID: sessionID,
		lines:     lines,
	}, nil
}

// 変更をセッションストアへ書き戻す
func (c *SessionCart) save(ctx context.Context) error {
	b, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, c.sessionID, cartSessionKey, b)
}

// Add はバリアントを追加する。
// 新規行は quantity 0 + 現在価格のスナップショットで作り、
// override なら上書き、そうでなければ加算する。
func (c *SessionCart) Add(ctx context.Context, variantID int64, quantity int64, override bool) error {
	variant, err := c.variants.FindByID(ctx, variantID)
	if err != nil {
		return err
	}

	key := strconv.FormatInt(variantID, 10)
	line, ok := c.lines[key]
	if !ok {
		line = SessionLine{Quantity: 0, Price: variant.FinalPrice()}
	}

	if override {
		line.Quantity = quantity
	} else {
		line.Quantity += quantity
	}

	c.lines[key] = line
	return c.save(ctx)
}

// Remove は行を消す。無ければ何もしない
func (c *SessionCart) Remove(ctx context.Context, variantID int64) error {
	key := strconv.FormatInt(variantID, 10)
	if _, ok := c.lines[key]; !ok {
		return nil
	}
	delete(c.lines, key)
	return c.save(ctx)
}

// Items はバリアント解決済みの明細を返す。
// バリアントは毎回まとめて引き直し、解決できない行は黙って落とす。
func (c *SessionCart) Items(ctx context.Context) ([]SessionCartItem, error) {
	ids := make([]int64, 0, len(c.lines))
	for key := range c.lines {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	variants, err := c.variants.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]SessionCartItem, 0, len(variants))
	for _, v := range variants {
		line, ok := c.lines[strconv.FormatInt(v.ID, 10)]
		if !ok {
			continue
		}
		items = append(items, SessionCartItem{
			Variant:    v,
			Quantity:   line.Quantity,
			Price:      line.Price,
			TotalPrice: line.Price.Mul(decimal.NewFromInt(line.Quantity)),
		})
	}

	return items, nil
}

// Len は数量の合計（行数ではない）
func (c *SessionCart) Len() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice はスナップショット価格 × 数量の合計。
// 追加後にカタログ価格が変わっても「見たときの価格」を守る。
func (c *SessionCart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// Clear は全行を消して保存する
func (c *SessionCart) Clear(ctx context.Context) error {
	c.lines = map[string]SessionLine{}
	return c.save(ctx)
}
