package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"bmg-store/internal/domain"
	"bmg-store/internal/repository"
)

// memDB is an in-memory stand-in for the relational store
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]domain.Product
	cart     []domain.CartItem
	orders   []domain.Order

	locksMu      sync.Mutex
	sessionLocks map[string]*sync.Mutex

	failOrderCreate error
	honorCtx        bool
	productFinds    int
	productLists    int
}

func newMemDB() *memDB {
	return &memDB{
		products:     make(map[int64]domain.Product),
		sessionLocks: make(map[string]*sync.Mutex),
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) addProduct(name string, price int64, sizes, colors []string) *domain.Product {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := domain.Product{ID: db.id(), Name: name, Price: price, Sizes: sizes, Colors: colors, CreatedAt: time.Now()}
	db.products[p.ID] = p
	return &p
}

func (db *memDB) setPrice(id int64, price int64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.products[id]
	p.Price = price
	db.products[id] = p
}

func (db *memDB) orderCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.orders)
}

type memProducts struct{ db *memDB }

func (r memProducts) Create(ctx context.Context, product *domain.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	product.ID = r.db.id()
	product.CreatedAt = time.Now()
	r.db.products[product.ID] = *product
	return nil
}

func (r memProducts) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.honorCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.db.productFinds++
	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (r memProducts) List(ctx context.Context) ([]*domain.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.honorCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	r.db.productLists++
	out := []*domain.Product{}
	for _, p := range r.db.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProducts) Count(ctx context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.products), nil
}

type memCarts struct{ db *memDB }

func (r memCarts) ListBySession(ctx context.Context, sessionID string) ([]*domain.CartLine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	lines := []*domain.CartLine{}
	for _, item := range r.db.cart {
		if item.SessionID != sessionID {
			continue
		}
		product, ok := r.db.products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, &domain.CartLine{CartItem: item, Product: product})
	}
	return lines, nil
}

func (r memCarts) Create(ctx context.Context, item *domain.CartItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item.ID = r.db.id()
	r.db.cart = append(r.db.cart, *item)
	return nil
}

func (r memCarts) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.cart = filterCart(r.db.cart, func(item domain.CartItem) bool { return item.ID != id })
	return nil
}

func (r memCarts) DeleteBySession(ctx context.Context, sessionID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.cart = filterCart(r.db.cart, func(item domain.CartItem) bool { return item.SessionID != sessionID })
	return nil
}

func (r memCarts) DeleteLines(ctx context.Context, sessionID string, ids []int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	before := len(r.db.cart)
	r.db.cart = filterCart(r.db.cart, func(item domain.CartItem) bool {
		return item.SessionID != sessionID || !drop[item.ID]
	})
	return int64(before - len(r.db.cart)), nil
}

func filterCart(items []domain.CartItem, keep func(domain.CartItem) bool) []domain.CartItem {
	out := items[:0:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

type memOrders struct{ db *memDB }

func (r memOrders) Create(ctx context.Context, order *domain.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.failOrderCreate != nil {
		return r.db.failOrderCreate
	}

	order.ID = r.db.id()
	order.CreatedAt = time.Now()
	stored := *order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	r.db.orders = append(r.db.orders, stored)
	return nil
}

func (r memOrders) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, o := range r.db.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r memOrders) ListBySession(ctx context.Context, sessionID string) ([]*domain.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := []*domain.Order{}
	for i := len(r.db.orders) - 1; i >= 0; i-- {
		if o := r.db.orders[i]; o.SessionID == sessionID {
			out = append(out, &o)
		}
	}
	return out, nil
}

type memStore struct{ db *memDB }

func (s memStore) Products() repository.ProductRepository { return memProducts{s.db} }
func (s memStore) Carts() repository.CartRepository       { return memCarts{s.db} }
func (s memStore) Orders() repository.OrderRepository     { return memOrders{s.db} }

// memTransactor serializes work per session and restores the previous state on error
type memTransactor struct {
	db      *memDB
	started int
}

func (t *memTransactor) WithinSession(ctx context.Context, sessionID string, fn func(ctx context.Context, store repository.Store) error) error {
	t.db.locksMu.Lock()
	t.started++
	lock, ok := t.db.sessionLocks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		t.db.sessionLocks[sessionID] = lock
	}
	t.db.locksMu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	t.db.mu.Lock()
	cartBackup := append([]domain.CartItem(nil), t.db.cart...)
	ordersBackup := append([]domain.Order(nil), t.db.orders...)
	t.db.mu.Unlock()

	if err := fn(ctx, memStore{t.db}); err != nil {
		t.db.mu.Lock()
		t.db.cart = cartBackup
		t.db.orders = ordersBackup
		t.db.mu.Unlock()
		return err
	}
	return nil
}
