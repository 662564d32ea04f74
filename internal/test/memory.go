package test

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

type memoryData struct {
	seq          int64
	users        map[int64]model.User
	tables       map[int64]model.Table
	categories   map[int64]model.Category
	dishes       map[int64]model.Dish
	menus        map[int64]model.Menu
	orders       map[int64]model.Order
	lines        map[int64]model.OrderLine
	payments     map[int64]model.Payment
	reservations map[int64]model.Reservation
	reviews      map[int64]model.Review
}

func newMemoryData() *memoryData {
	return &memoryData{
		users:        map[int64]model.User{},
		tables:       map[int64]model.Table{},
		categories:   map[int64]model.Category{},
		dishes:       map[int64]model.Dish{},
		menus:        map[int64]model.Menu{},
		orders:       map[int64]model.Order{},
		lines:        map[int64]model.OrderLine{},
		payments:     map[int64]model.Payment{},
		reservations: map[int64]model.Reservation{},
		reviews:      map[int64]model.Review{},
	}
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (d *memoryData) clone() *memoryData {
	menus := make(map[int64]model.Menu, len(d.menus))
	for id, m := range d.menus {
		m.DishIDs = append([]int64(nil), m.DishIDs...)
		menus[id] = m
	}
	return &memoryData{
		seq:          d.seq,
		users:        cloneMap(d.users),
		tables:       cloneMap(d.tables),
		categories:   cloneMap(d.categories),
		dishes:       cloneMap(d.dishes),
		menus:        menus,
		orders:       cloneMap(d.orders),
		lines:        cloneMap(d.lines),
		payments:     cloneMap(d.payments),
		reservations: cloneMap(d.reservations),
		reviews:      cloneMap(d.reviews),
	}
}

func (d *memoryData) next() int64 {
	d.seq++
	return d.seq
}

// MemoryStore is an in-memory repository.Factory. Transactions snapshot the
// whole store and restore it when the callback fails.
type MemoryStore struct {
	mu   sync.RWMutex
	data *memoryData
	inTx bool

	// Failures injects errors by operation name, e.g. "payments.create".
	Failures map[string]error
	// Now stamps created records; defaults to time.Now.
	Now func() time.Time
}

var _ repository.Factory = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemoryData(), Failures: map[string]error{}}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *MemoryStore) fail(op string) error {
	if s.Failures == nil {
		return nil
	}
	return s.Failures[op]
}

func (s *MemoryStore) Users() repository.UserRepository               { return memUsers{s} }
func (s *MemoryStore) Tables() repository.TableRepository             { return memTables{s} }
func (s *MemoryStore) Catalog() repository.CatalogRepository          { return memCatalog{s} }
func (s *MemoryStore) Orders() repository.OrderRepository             { return memOrders{s} }
func (s *MemoryStore) Payments() repository.PaymentRepository         { return memPayments{s} }
func (s *MemoryStore) Reservations() repository.ReservationRepository { return memReservations{s} }
func (s *MemoryStore) Reviews() repository.ReviewRepository           { return memReviews{s} }
func (s *MemoryStore) Stats() repository.StatsRepository              { return memStats{s} }

// WithinTransaction runs fn and rolls the store back if it returns an error.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) error {
	if err := s.fail("tx.begin"); err != nil {
		return err
	}
	s.mu.Lock()
	if s.inTx {
		s.mu.Unlock()
		return fn(s)
	}
	s.inTx = true
	snapshot := s.data.clone()
	s.mu.Unlock()

	err := fn(s)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inTx = false
	if err != nil {
		s.data = snapshot
		return err
	}
	if err := s.fail("tx.commit"); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// --- users ---

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.s.fail("users.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Email == user.Email || (user.Phone != "" && u.Phone == user.Phone) {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *user
	created.ID = r.s.data.next()
	created.CreatedAt = r.s.now()
	r.s.data.users[created.ID] = created
	return &created, nil
}

func (r memUsers) Update(ctx context.Context, user *model.User) error {
	if err := r.s.fail("users.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.users[user.ID]
	if !ok {
		return domainErrors.NotFound("user", user.ID)
	}
	for _, u := range r.s.data.users {
		if u.ID != user.ID && (u.Email == user.Email || (user.Phone != "" && u.Phone == user.Phone)) {
			return domainErrors.ErrAlreadyExists
		}
	}
	updated := *user
	updated.CreatedAt = existing.CreatedAt
	r.s.data.users[user.ID] = updated
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, domainErrors.NotFound("user", id)
	}
	return &u, nil
}

func (r memUsers) find(match func(model.User) bool) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r memUsers) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	if phone == "" {
		return nil, domainErrors.ErrNotFound
	}
	return r.find(func(u model.User) bool { return u.Phone == phone })
}

func (r memUsers) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, domainErrors.ErrNotFound
	}
	return r.find(func(u model.User) bool { return u.VerificationToken == token })
}

func (r memUsers) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r memUsers) SetActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, domainErrors.NotFound("user", id)
	}
	u.Active = active
	r.s.data.users[id] = u
	return &u, nil
}

func (r memUsers) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[id]; !ok {
		return domainErrors.NotFound("user", id)
	}
	delete(r.s.data.users, id)
	return nil
}

// --- tables ---

type memTables struct{ s *MemoryStore }

func (r memTables) conflict(t *model.Table) bool {
	for _, existing := range r.s.data.tables {
		if existing.ID != t.ID && (existing.Number == t.Number || (t.QRCode != "" && existing.QRCode == t.QRCode)) {
			return true
		}
	}
	return false
}

func (r memTables) Create(ctx context.Context, table *model.Table) (*model.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflict(table) {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := *table
	created.ID = r.s.data.next()
	r.s.data.tables[created.ID] = created
	return &created, nil
}

func (r memTables) GetByID(ctx context.Context, id int64) (*model.Table, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.data.tables[id]
	if !ok {
		return nil, domainErrors.NotFound("table", id)
	}
	return &t, nil
}

func (r memTables) GetByNumber(ctx context.Context, number int) (*model.Table, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.data.tables {
		if t.Number == number {
			return &t, nil
		}
	}
	return nil, domainErrors.NotFound("table number", int64(number))
}

func (r memTables) GetByQRCode(ctx context.Context, code string) (*model.Table, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.data.tables {
		if t.QRCode == code {
			return &t, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memTables) List(ctx context.Context) ([]model.Table, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Table, 0, len(r.s.data.tables))
	for _, t := range r.s.data.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r memTables) Update(ctx context.Context, table *model.Table) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.tables[table.ID]; !ok {
		return domainErrors.NotFound("table", table.ID)
	}
	if r.conflict(table) {
		return domainErrors.ErrAlreadyExists
	}
	r.s.data.tables[table.ID] = *table
	return nil
}

func (r memTables) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.tables[id]; !ok {
		return domainErrors.NotFound("table", id)
	}
	delete(r.s.data.tables, id)
	return nil
}

// --- catalog ---

type memCatalog struct{ s *MemoryStore }

func (r memCatalog) CreateCategory(ctx context.Context, c *model.Category) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.categories {
		if existing.Name == c.Name {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *c
	created.ID = r.s.data.next()
	r.s.data.categories[created.ID] = created
	return &created, nil
}

func (r memCatalog) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, domainErrors.NotFound("category", id)
	}
	return &c, nil
}

func (r memCatalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCatalog) UpdateCategory(ctx context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[c.ID]; !ok {
		return domainErrors.NotFound("category", c.ID)
	}
	r.s.data.categories[c.ID] = *c
	return nil
}

func (r memCatalog) DeleteCategory(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[id]; !ok {
		return domainErrors.NotFound("category", id)
	}
	delete(r.s.data.categories, id)
	return nil
}

func (r memCatalog) CreateDish(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *d
	created.ID = r.s.data.next()
	r.s.data.dishes[created.ID] = created
	return &created, nil
}

func (r memCatalog) GetDish(ctx context.Context, id int64) (*model.Dish, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.data.dishes[id]
	if !ok {
		return nil, domainErrors.NotFound("dish", id)
	}
	return &d, nil
}

func (r memCatalog) ListDishes(ctx context.Context, filter repository.DishFilter) ([]model.Dish, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Dish, 0, len(r.s.data.dishes))
	for _, d := range r.s.data.dishes {
		if filter.CategoryID != nil && (d.CategoryID == nil || *d.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.AvailableOnly && !d.Available {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCatalog) UpdateDish(ctx context.Context, d *model.Dish) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.dishes[d.ID]; !ok {
		return domainErrors.NotFound("dish", d.ID)
	}
	r.s.data.dishes[d.ID] = *d
	return nil
}

func (r memCatalog) DeleteDish(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.dishes[id]; !ok {
		return domainErrors.NotFound("dish", id)
	}
	delete(r.s.data.dishes, id)
	return nil
}

func (r memCatalog) CreateMenu(ctx context.Context, m *model.Menu) (*model.Menu, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *m
	created.ID = r.s.data.next()
	created.DishIDs = nil
	r.s.data.menus[created.ID] = created
	return &created, nil
}

func (r memCatalog) GetMenu(ctx context.Context, id int64) (*model.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.data.menus[id]
	if !ok {
		return nil, domainErrors.NotFound("menu", id)
	}
	m.DishIDs = append([]int64(nil), m.DishIDs...)
	return &m, nil
}

func (r memCatalog) ListMenus(ctx context.Context) ([]model.Menu, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Menu, 0, len(r.s.data.menus))
	for _, m := range r.s.data.menus {
		m.DishIDs = nil
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCatalog) UpdateMenu(ctx context.Context, m *model.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.menus[m.ID]
	if !ok {
		return domainErrors.NotFound("menu", m.ID)
	}
	updated := *m
	updated.DishIDs = existing.DishIDs
	r.s.data.menus[m.ID] = updated
	return nil
}

func (r memCatalog) DeleteMenu(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.menus[id]; !ok {
		return domainErrors.NotFound("menu", id)
	}
	delete(r.s.data.menus, id)
	return nil
}

func (r memCatalog) AddMenuDish(ctx context.Context, menuID, dishID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.menus[menuID]
	if !ok {
		return domainErrors.NotFound("menu", menuID)
	}
	for _, id := range m.DishIDs {
		if id == dishID {
			return nil
		}
	}
	m.DishIDs = append(append([]int64(nil), m.DishIDs...), dishID)
	sort.Slice(m.DishIDs, func(i, j int) bool { return m.DishIDs[i] < m.DishIDs[j] })
	r.s.data.menus[menuID] = m
	return nil
}

func (r memCatalog) RemoveMenuDish(ctx context.Context, menuID, dishID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.menus[menuID]
	if !ok {
		return domainErrors.NotFound("menu", menuID)
	}
	kept := make([]int64, 0, len(m.DishIDs))
	for _, id := range m.DishIDs {
		if id != dishID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(m.DishIDs) {
		return domainErrors.NotFound("menu dish", dishID)
	}
	m.DishIDs = kept
	r.s.data.menus[menuID] = m
	return nil
}

// --- orders ---

type memOrders struct{ s *MemoryStore }

func (r memOrders) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := r.s.fail("orders.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *order
	created.ID = r.s.data.next()
	created.CreatedAt = r.s.now()
	created.Lines = nil
	r.s.data.orders[created.ID] = created
	return &created, nil
}

func (r memOrders) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, domainErrors.NotFound("order", id)
	}
	return &o, nil
}

func (r memOrders) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Order, 0, len(r.s.data.orders))
	for _, o := range r.s.data.orders {
		if filter.ClientID != nil && o.ClientID != *filter.ClientID {
			continue
		}
		if filter.TableID != nil && o.TableID != *filter.TableID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, filter.Limit, filter.Offset), nil
}

func (r memOrders) Update(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, domainErrors.NotFound("order", id)
	}
	if patch.ClientID != nil {
		o.ClientID = *patch.ClientID
	}
	if patch.TableID != nil {
		o.TableID = *patch.TableID
	}
	if patch.ServerID != nil {
		server := *patch.ServerID
		o.ServerID = &server
	}
	if patch.Type != nil {
		o.Type = *patch.Type
	}
	if patch.Notes != nil {
		o.Notes = *patch.Notes
	}
	r.s.data.orders[id] = o
	return &o, nil
}

func (r memOrders) UpdateStatus(ctx context.Context, order *model.Order) error {
	if err := r.s.fail("orders.update_status"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[order.ID]
	if !ok {
		return domainErrors.NotFound("order", order.ID)
	}
	o.Status = order.Status
	o.ServerID = order.ServerID
	o.CookID = order.CookID
	r.s.data.orders[order.ID] = o
	return nil
}

func (r memOrders) SetTotal(ctx context.Context, id int64, total int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return domainErrors.NotFound("order", id)
	}
	o.Total = total
	r.s.data.orders[id] = o
	return nil
}

func (r memOrders) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orders[id]; !ok {
		return domainErrors.NotFound("order", id)
	}
	delete(r.s.data.orders, id)
	for lineID, l := range r.s.data.lines {
		if l.OrderID == id {
			delete(r.s.data.lines, lineID)
		}
	}
	for pid, p := range r.s.data.payments {
		if p.OrderID == id {
			delete(r.s.data.payments, pid)
		}
	}
	for rid, rv := range r.s.data.reviews {
		if rv.OrderID == id {
			delete(r.s.data.reviews, rid)
		}
	}
	return nil
}

func (r memOrders) AddLine(ctx context.Context, line *model.OrderLine) (*model.OrderLine, error) {
	if err := r.s.fail("orders.add_line"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orders[line.OrderID]; !ok {
		return nil, domainErrors.NotFound("order", line.OrderID)
	}
	created := *line
	created.ID = r.s.data.next()
	r.s.data.lines[created.ID] = created
	return &created, nil
}

func (r memOrders) ListLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.OrderLine, 0)
	for _, l := range r.s.data.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memOrders) SetLinesStatus(ctx context.Context, orderID int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.data.lines {
		if l.OrderID == orderID {
			l.Status = status
			r.s.data.lines[id] = l
		}
	}
	return nil
}

// --- payments ---

type memPayments struct{ s *MemoryStore }

func (r memPayments) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if err := r.s.fail("payments.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.payments {
		if p.OrderID == payment.OrderID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *payment
	created.ID = r.s.data.next()
	if created.PaidAt.IsZero() {
		created.PaidAt = r.s.now()
	}
	r.s.data.payments[created.ID] = created
	return &created, nil
}

func (r memPayments) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.data.payments {
		if p.OrderID == orderID {
			return &p, nil
		}
	}
	return nil, domainErrors.NotFound("payment for order", orderID)
}

// AllPayments returns every stored payment, for assertions.
func (s *MemoryStore) AllPayments() []model.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Payment, 0, len(s.data.payments))
	for _, p := range s.data.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- reservations ---

type memReservations struct{ s *MemoryStore }

func (r memReservations) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *res
	created.ID = r.s.data.next()
	r.s.data.reservations[created.ID] = created
	return &created, nil
}

func (r memReservations) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.data.reservations[id]
	if !ok {
		return nil, domainErrors.NotFound("reservation", id)
	}
	return &res, nil
}

func (r memReservations) List(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Reservation, 0)
	for _, res := range r.s.data.reservations {
		if filter.ClientID != nil && res.ClientID != *filter.ClientID {
			continue
		}
		if filter.TableID != nil && res.TableID != *filter.TableID {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].ID < out[j].ID
		}
		return out[i].At.Before(out[j].At)
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (r memReservations) Update(ctx context.Context, res *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reservations[res.ID]; !ok {
		return domainErrors.NotFound("reservation", res.ID)
	}
	r.s.data.reservations[res.ID] = *res
	return nil
}

func (r memReservations) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reservations[id]; !ok {
		return domainErrors.NotFound("reservation", id)
	}
	delete(r.s.data.reservations, id)
	return nil
}

func (r memReservations) CountActiveBetween(ctx context.Context, tableID int64, from, to time.Time, excludeID *int64) (int, error) {
	if err := r.s.fail("reservations.count"); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, res := range r.s.data.reservations {
		if res.TableID != tableID || res.Status == model.ReservationStatusCancelled {
			continue
		}
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if res.At.After(from) && res.At.Before(to) {
			count++
		}
	}
	return count, nil
}

// --- reviews ---

type memReviews struct{ s *MemoryStore }

func (r memReviews) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.data.reviews {
		if rv.OrderID == review.OrderID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	created := *review
	created.ID = r.s.data.next()
	created.CreatedAt = r.s.now()
	r.s.data.reviews[created.ID] = created
	return &created, nil
}

func (r memReviews) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.data.reviews[id]
	if !ok {
		return nil, domainErrors.NotFound("review", id)
	}
	return &rv, nil
}

func (r memReviews) GetByOrder(ctx context.Context, orderID int64) (*model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.data.reviews {
		if rv.OrderID == orderID {
			return &rv, nil
		}
	}
	return nil, domainErrors.NotFound("review for order", orderID)
}

func (r memReviews) List(ctx context.Context, orderID *int64, limit, offset int) ([]model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Review, 0)
	for _, rv := range r.s.data.reviews {
		if orderID != nil && rv.OrderID != *orderID {
			continue
		}
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

func (r memReviews) Update(ctx context.Context, review *model.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.data.reviews[review.ID]
	if !ok {
		return domainErrors.NotFound("review", review.ID)
	}
	rv.Rating = review.Rating
	rv.Comment = review.Comment
	r.s.data.reviews[review.ID] = rv
	return nil
}

func (r memReviews) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.reviews[id]; !ok {
		return domainErrors.NotFound("review", id)
	}
	delete(r.s.data.reviews, id)
	return nil
}

// --- stats ---

type memStats struct{ s *MemoryStore }

func (r memStats) Revenue(ctx context.Context) (int64, error) {
	if err := r.s.fail("stats.revenue"); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total int64
	for _, p := range r.s.data.payments {
		if p.Status == model.PaymentStatusSucceeded {
			total += p.Amount
		}
	}
	return total, nil
}

func (r memStats) PaidOrders(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, o := range r.s.data.orders {
		if o.Status == model.OrderStatusPaid {
			count++
		}
	}
	return count, nil
}

func (r memStats) AverageRating(ctx context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if len(r.s.data.reviews) == 0 {
		return 0, nil
	}
	var sum int
	for _, rv := range r.s.data.reviews {
		sum += rv.Rating
	}
	avg := float64(sum) / float64(len(r.s.data.reviews))
	return math.Round(avg*100) / 100, nil
}

func (r memStats) TopDishes(ctx context.Context, limit int) ([]model.DishPopularity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sold := map[int64]int64{}
	for _, l := range r.s.data.lines {
		o, ok := r.s.data.orders[l.OrderID]
		if !ok || o.Status != model.OrderStatusPaid || l.Target.Kind() != model.TargetDish {
			continue
		}
		sold[l.Target.ID()] += int64(l.Quantity)
	}
	out := make([]model.DishPopularity, 0, len(sold))
	for id, qty := range sold {
		out = append(out, model.DishPopularity{DishID: id, Name: r.s.data.dishes[id].Name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity == out[j].Quantity {
			return out[i].DishID < out[j].DishID
		}
		return out[i].Quantity > out[j].Quantity
	})
	return page(out, limit, 0), nil
}

func (r memStats) RevenueByDay(ctx context.Context, days int) ([]model.DailyRevenue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byDay := map[string]int64{}
	for _, p := range r.s.data.payments {
		if p.Status == model.PaymentStatusSucceeded {
			byDay[p.PaidAt.UTC().Format("2006-01-02")] += p.Amount
		}
	}
	out := make([]model.DailyRevenue, 0, len(byDay))
	for day, revenue := range byDay {
		out = append(out, model.DailyRevenue{Day: day, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return page(out, days, 0), nil
}
