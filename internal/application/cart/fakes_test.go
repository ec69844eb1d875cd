package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/jiushu/bookmarket/internal/domain/book"
	"github.com/jiushu/bookmarket/internal/domain/cart"
	"github.com/jiushu/bookmarket/internal/domain/purchase"
)

// 内存版仓储,供用例层单元测试使用
// 说明:用互斥锁模拟数据库的写入互斥,事务语义由fakeTxManager串行化模拟

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) BatchFindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[uint]*book.Book, len(ids))
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result[id] = b
		}
	}
	return result, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock += delta
	b.Available = b.Stock > 0
	return nil
}

type fakeCartRepo struct {
	mu         sync.Mutex
	nextCartID uint
	nextItemID uint
	carts      map[uint]*cart.Cart // userID → cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart)}
}

func (r *fakeCartRepo) GetOrCreate(ctx context.Context, userID uint) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		return c, nil
	}
	r.nextCartID++
	c := &cart.Cart{ID: r.nextCartID, UserID: userID}
	r.carts[userID] = c
	return c, nil
}

func (r *fakeCartRepo) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart not found for user %d", userID)
	}
	return c, nil
}

func (r *fakeCartRepo) findCart(cartID uint) *cart.Cart {
	for _, c := range r.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (r *fakeCartRepo) FindItem(ctx context.Context, cartID, bookID uint) (*cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.findCart(cartID); c != nil {
		if item := c.FindItem(bookID); item != nil {
			return item, nil
		}
	}
	return nil, cart.ErrItemNotFound
}

func (r *fakeCartRepo) CreateItem(ctx context.Context, item *cart.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.findCart(item.CartID)
	if c == nil {
		return fmt.Errorf("cart %d not found", item.CartID)
	}
	r.nextItemID++
	item.ID = r.nextItemID
	c.Items = append(c.Items, item)
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(ctx context.Context, item *cart.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.findCart(item.CartID)
	if c == nil {
		return cart.ErrItemNotFound
	}
	existing := c.FindItem(item.BookID)
	if existing == nil {
		return cart.ErrItemNotFound
	}
	existing.Quantity = item.Quantity
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, bookID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.findCart(cartID)
	if c == nil {
		return cart.ErrItemNotFound
	}
	for i, item := range c.Items {
		if item.BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return cart.ErrItemNotFound
}

func (r *fakeCartRepo) ClearItems(ctx context.Context, cartID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.findCart(cartID); c != nil {
		c.Items = nil
	}
	return nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	nextID    uint
	purchases []*purchase.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{}
}

func (r *fakePurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.purchases = append(r.purchases, p)
	return nil
}

func (r *fakePurchaseRepo) FindByPurchaseNo(ctx context.Context, purchaseNo string) (*purchase.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.PurchaseNo == purchaseNo {
			return p, nil
		}
	}
	return nil, purchase.ErrPurchaseNotFound
}

func (r *fakePurchaseRepo) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*purchase.Purchase, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*purchase.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, int64(len(result)), nil
}

// fakeTxManager 用全局互斥锁模拟数据库事务的串行执行
// 两个并发结算在这里排队,和行锁"后到的等前面提交"的效果一致
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
