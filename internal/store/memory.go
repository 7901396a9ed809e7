package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/model"
)

// Memory is a process-local Store with the same observable semantics as
// Mongo. Slices preserve insertion order.
type Memory struct {
	mu       sync.RWMutex
	users    []model.User
	orders   []model.Order
	payments []model.Payment
	products []model.Product
	reviews  []model.Review
	profiles []model.UserProfile
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

// ----- Users -----

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) UpsertUser(_ context.Context, email string, fields UserFields) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.userIndex(email)
	if i < 0 {
		u := model.User{
			ID:           primitive.NewObjectID(),
			Email:        email,
			Name:         fields.Name,
			PhotoURL:     fields.PhotoURL,
			PasswordHash: fields.PasswordHash,
			Role:         model.RoleCustomer,
		}
		m.users = append(m.users, u)
		return UpdateResult{UpsertedCount: 1, UpsertedID: u.ID.Hex()}, nil
	}

	before := m.users[i]
	u := &m.users[i]
	if fields.Name != "" {
		u.Name = fields.Name
	}
	if fields.PhotoURL != "" {
		u.PhotoURL = fields.PhotoURL
	}
	if fields.PasswordHash != "" {
		u.PasswordHash = fields.PasswordHash
	}
	return UpdateResult{MatchedCount: 1, ModifiedCount: changed(before != *u)}, nil
}

func (m *Memory) FindUser(_ context.Context, email string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.userIndex(email)
	if i < 0 {
		return model.User{}, apperr.ErrNotFound
	}
	return m.users[i], nil
}

func (m *Memory) ListUsers(context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.User{}, m.users...), nil
}

func (m *Memory) SetRole(_ context.Context, email, role string) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.userIndex(email)
	if i < 0 {
		return UpdateResult{}, nil
	}
	mod := m.users[i].Role != role
	m.users[i].Role = role
	return UpdateResult{MatchedCount: 1, ModifiedCount: changed(mod)}, nil
}

func (m *Memory) Role(ctx context.Context, email string) (string, error) {
	u, err := m.FindUser(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (m *Memory) userIndex(email string) int {
	for i := range m.users {
		if m.users[i].Email == email {
			return i
		}
	}
	return -1
}

// ----- Orders -----

func (m *Memory) CreateOrder(_ context.Context, o model.Order) (InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o.ID = primitive.NewObjectID()
	o.Paid = false
	o.TransactionID = ""
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	m.orders = append(m.orders, o)
	return InsertResult{InsertedID: o.ID.Hex()}, nil
}

func (m *Memory) ListOrdersByOwner(_ context.Context, email string) ([]model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Order{}
	for _, o := range m.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) GetOrder(_ context.Context, id string) (model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.orderIndex(id)
	if i < 0 {
		return model.Order{}, apperr.ErrNotFound
	}
	return m.orders[i], nil
}

func (m *Memory) DeleteOrder(_ context.Context, id string) (DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(id)
	if i < 0 || m.orders[i].Paid {
		return DeleteResult{}, nil
	}
	m.orders = append(m.orders[:i], m.orders[i+1:]...)
	return DeleteResult{DeletedCount: 1}, nil
}

func (m *Memory) PatchPaymentStatus(_ context.Context, id, transactionID string) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(id)
	if i < 0 || m.orders[i].Paid {
		return UpdateResult{}, nil
	}
	return m.markPaid(i, transactionID), nil
}

func (m *Memory) orderIndex(id string) int {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1
	}
	for i := range m.orders {
		if m.orders[i].ID == oid {
			return i
		}
	}
	return -1
}

// markPaid expects an unpaid order at index i.
func (m *Memory) markPaid(i int, transactionID string) UpdateResult {
	o := &m.orders[i]
	o.Paid = true
	o.TransactionID = transactionID
	return UpdateResult{MatchedCount: 1, ModifiedCount: 1}
}

// ----- Payments -----

func (m *Memory) ConfirmPayment(_ context.Context, p model.Payment) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.orderIndex(p.OrderID)
	if i < 0 {
		return UpdateResult{}, apperr.ErrNotFound
	}
	if o := m.orders[i]; o.Paid {
		if o.TransactionID == p.TransactionID {
			return UpdateResult{MatchedCount: 1}, nil
		}
		return UpdateResult{}, fmt.Errorf("%w: order %s already paid", apperr.ErrConflict, p.OrderID)
	}

	p.ID = primitive.NewObjectID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.payments = append(m.payments, p)
	return m.markPaid(i, p.TransactionID), nil
}

func (m *Memory) ListPayments(_ context.Context, orderID string) ([]model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Payment{}
	for _, p := range m.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ----- Products -----

func (m *Memory) ListProducts(context.Context) ([]model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Product{}, m.products...), nil
}

func (m *Memory) GetProduct(_ context.Context, id string) (model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.productIndex(id)
	if i < 0 {
		return model.Product{}, apperr.ErrNotFound
	}
	return m.products[i], nil
}

func (m *Memory) CreateProduct(_ context.Context, p model.Product) (InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = primitive.NewObjectID()
	m.products = append(m.products, p)
	return InsertResult{InsertedID: p.ID.Hex()}, nil
}

func (m *Memory) UpdateStock(_ context.Context, id string, stock int) (UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return UpdateResult{}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.productIndex(id)
	if i < 0 {
		m.products = append(m.products, model.Product{ID: oid, Stock: stock})
		return UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
	}
	mod := m.products[i].Stock != stock
	m.products[i].Stock = stock
	return UpdateResult{MatchedCount: 1, ModifiedCount: changed(mod)}, nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) (DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.productIndex(id)
	if i < 0 {
		return DeleteResult{}, nil
	}
	m.products = append(m.products[:i], m.products[i+1:]...)
	return DeleteResult{DeletedCount: 1}, nil
}

func (m *Memory) productIndex(id string) int {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1
	}
	for i := range m.products {
		if m.products[i].ID == oid {
			return i
		}
	}
	return -1
}

// ----- Reviews -----

func (m *Memory) ListReviews(context.Context) ([]model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Review{}, m.reviews...), nil
}

func (m *Memory) CreateReview(_ context.Context, r model.Review) (InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = primitive.NewObjectID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.reviews = append(m.reviews, r)
	return InsertResult{InsertedID: r.ID.Hex()}, nil
}

// ----- Profiles -----

func (m *Memory) UpsertProfile(_ context.Context, p model.UserProfile) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.profiles {
		cur := &m.profiles[i]
		if cur.Email != p.Email {
			continue
		}
		before := *cur
		if p.Education != "" {
			cur.Education = p.Education
		}
		if p.Location != "" {
			cur.Location = p.Location
		}
		if p.Phone != "" {
			cur.Phone = p.Phone
		}
		if p.LinkedIn != "" {
			cur.LinkedIn = p.LinkedIn
		}
		return UpdateResult{MatchedCount: 1, ModifiedCount: changed(before != *cur)}, nil
	}

	p.ID = primitive.NewObjectID()
	m.profiles = append(m.profiles, p)
	return UpdateResult{UpsertedCount: 1, UpsertedID: p.ID.Hex()}, nil
}

func (m *Memory) GetProfile(_ context.Context, email string) (model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return model.UserProfile{}, apperr.ErrNotFound
}

func changed(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
