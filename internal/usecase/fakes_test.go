package usecase

import (
	"context"
	"errors"
	"sort"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// Product込みのバリアントを組み立てる
func testVariant(id int64, basePrice string, stock int64) model.ProductVariant {
	return model.ProductVariant{
		ID:        id,
		ProductID: id,
		Product: model.Product{
			ID:        id,
			Name:      "Product",
			BasePrice: decimal.RequireFromString(basePrice),
			IsActive:  true,
		},
		Name:            "Default",
		SKU:             "SKU-" + decimal.NewFromInt(id).String(),
		PriceAdjustment: decimal.Zero,
		Stock:           stock,
	}
}

// =====================
// Fake: VariantRepository
// =====================

type fakeVariantRepo struct {
	variants map[int64]model.ProductVariant
}

func newFakeVariantRepo(variants ...model.ProductVariant) *fakeVariantRepo {
	m := map[int64]model.ProductVariant{}
	for _, v := range variants {
		m[v.ID] = v
	}
	return &fakeVariantRepo{variants: m}
}

func (f *fakeVariantRepo) FindByID(ctx context.Context, id int64) (model.ProductVariant, error) {
	v, ok := f.variants[id]
	if !ok {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	return v, nil
}

func (f *fakeVariantRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.ProductVariant, error) {
	out := []model.ProductVariant{}
	for _, id := range ids {
		if v, ok := f.variants[id]; ok {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeVariantRepo) ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	out := []model.ProductVariant{}
	for _, v := range f.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =====================
// Fake: Cart/CartItem
// =====================

type fakeCartStore struct {
	nextCartID int64
	carts      map[int64]model.Cart // key: userID

	nextItemID int64
	items      []model.CartItem
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		nextCartID: 1,
		carts:      map[int64]model.Cart{},
		nextItemID: 1,
	}
}

type fakeCartRepo struct{ s *fakeCartStore }

func (f *fakeCartRepo) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	if cart, ok := f.s.carts[userID]; ok {
		return cart, nil
	}
	cart := model.Cart{ID: f.s.nextCartID, UserID: userID}
	f.s.nextCartID++
	f.s.carts[userID] = cart
	return cart, nil
}

func (f *fakeCartRepo) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	cart, ok := f.s.carts[userID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}
	return cart, nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID int64) error {
	kept := f.s.items[:0]
	for _, it := range f.s.items {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	f.s.items = kept
	return nil
}

type fakeCartItemRepo struct{ s *fakeCartStore }

func (f *fakeCartItemRepo) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for _, it := range f.s.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartItemRepo) UpsertByCartAndVariant(ctx context.Context, cartID int64, variantID int64, addQty int64) error {
	for i, it := range f.s.items {
		if it.CartID == cartID && it.VariantID == variantID {
			f.s.items[i].Quantity += addQty
			return nil
		}
	}
	f.s.items = append(f.s.items, model.CartItem{
		ID:        f.s.nextItemID,
		CartID:    cartID,
		VariantID: variantID,
		Quantity:  addQty,
	})
	f.s.nextItemID++
	return nil
}

func (f *fakeCartItemRepo) DeleteByCartAndVariant(ctx context.Context, cartID int64, variantID int64) error {
	kept := f.s.items[:0]
	for _, it := range f.s.items {
		if it.CartID == cartID && it.VariantID == variantID {
			continue
		}
		kept = append(kept, it)
	}
	f.s.items = kept
	return nil
}

// =====================
// Fake: Order/OrderItem
// =====================

type fakeOrderRepo struct {
	nextID int64
	orders map[int64]model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: map[int64]model.Order{}}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	for _, o := range f.orders {
		if o.TransactionID == order.TransactionID {
			return 0, errors.New("duplicate transaction id")
		}
	}
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	return order.ID, nil
}

func (f *fakeOrderRepo) FindByTransactionID(ctx context.Context, transactionID string) (model.Order, error) {
	for _, o := range f.orders {
		if o.TransactionID == transactionID {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := f.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	f.orders[orderID] = o
	return nil
}

type fakeOrderItemRepo struct {
	nextID int64
	items  []model.OrderItem
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{nextID: 1}
}

func (f *fakeOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		it.ID = f.nextID
		f.nextID++
		it.OrderID = orderID
		f.items = append(f.items, it)
	}
	return nil
}

func (f *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

// =====================
// Fake: Inventory
// =====================

type fakeInventoryRepo struct {
	variants    *fakeVariantRepo
	adjustments []model.StockAdjustment
}

func (f *fakeInventoryRepo) DecreaseStockIfEnough(ctx context.Context, variantID int64, qty int64) (bool, error) {
	v, ok := f.variants.variants[variantID]
	if !ok || v.Stock < qty {
		return false, nil
	}
	v.Stock -= qty
	f.variants.variants[variantID] = v
	return true, nil
}

func (f *fakeInventoryRepo) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	f.adjustments = append(f.adjustments, adj)
	return nil
}

// =====================
// Fake: TransactionManager
// =====================

type fakeTxRepos struct {
	orders     *fakeOrderRepo
	orderItems *fakeOrderItemRepo
	carts      *fakeCartRepo
	cartItems  *fakeCartItemRepo
	variants   *fakeVariantRepo
	inventory  *fakeInventoryRepo
}

func (r *fakeTxRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *fakeTxRepos) Carts() repo.CartRepository           { return r.carts }
func (r *fakeTxRepos) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *fakeTxRepos) Variants() repo.VariantRepository     { return r.variants }
func (r *fakeTxRepos) Inventory() repo.InventoryRepository  { return r.inventory }

// ロールバックはしない。fn をそのまま呼ぶだけ
type fakeTxManager struct {
	repos *fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// テスト用の世界一式
type fakeWorld struct {
	variants  *fakeVariantRepo
	cartStore *fakeCartStore
	carts     *fakeCartRepo
	cartItems *fakeCartItemRepo
	orders    *fakeOrderRepo
	items     *fakeOrderItemRepo
	inventory *fakeInventoryRepo
	tx        *fakeTxManager
}

func newFakeWorld(variants ...model.ProductVariant) *fakeWorld {
	vr := newFakeVariantRepo(variants...)
	cs := newFakeCartStore()
	carts := &fakeCartRepo{s: cs}
	cartItems := &fakeCartItemRepo{s: cs}
	orders := newFakeOrderRepo()
	items := newFakeOrderItemRepo()
	inv := &fakeInventoryRepo{variants: vr}

	return &fakeWorld{
		variants:  vr,
		cartStore: cs,
		carts:     carts,
		cartItems: cartItems,
		orders:    orders,
		items:     items,
		inventory: inv,
		tx: &fakeTxManager{repos: &fakeTxRepos{
			orders:     orders,
			orderItems: items,
			carts:      carts,
			cartItems:  cartItems,
			variants:   vr,
			inventory:  inv,
		}},
	}
}
