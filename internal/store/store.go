// Package store is the document-store access layer. Mongo is the production
// implementation; Memory backs tests and local runs.
package store

import (
	"context"

	"cakeries-backend/internal/model"
)

const (
	CollectionProducts     = "products"
	CollectionOrders       = "orders"
	CollectionUsers        = "users"
	CollectionReviews      = "reviews"
	CollectionUserProfiles = "userProfiles"
	CollectionPayments     = "payments"
)

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UserFields are the profile fields a caller may set through an upsert.
// Empty values leave the stored field untouched.
type UserFields struct {
	Name         string
	PhotoURL     string
	PasswordHash string
}

type Users interface {
	UpsertUser(ctx context.Context, email string, fields UserFields) (UpdateResult, error)
	FindUser(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetRole(ctx context.Context, email, role string) (UpdateResult, error)
	Role(ctx context.Context, email string) (string, error)
}

// Orders never fails on unknown ids for writes; the zero counts in the result
// report the miss. Both writes skip paid orders the same way, so a paid order
// can be neither deleted nor re-stamped. GetOrder returns apperr.ErrNotFound.
type Orders interface {
	CreateOrder(ctx context.Context, o model.Order) (InsertResult, error)
	ListOrdersByOwner(ctx context.Context, email string) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (model.Order, error)
	DeleteOrder(ctx context.Context, id string) (DeleteResult, error)
	PatchPaymentStatus(ctx context.Context, id, transactionID string) (UpdateResult, error)
}

type Payments interface {
	// ConfirmPayment records p and marks its order paid as one atomic unit.
	// Confirming an already paid order with the same transaction id writes
	// nothing and reports MatchedCount 1, ModifiedCount 0. A missing order is
	// apperr.ErrNotFound and a different transaction id is apperr.ErrConflict.
	ConfirmPayment(ctx context.Context, p model.Payment) (UpdateResult, error)
	ListPayments(ctx context.Context, orderID string) ([]model.Payment, error)
}

type Products interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (InsertResult, error)
	UpdateStock(ctx context.Context, id string, stock int) (UpdateResult, error)
	DeleteProduct(ctx context.Context, id string) (DeleteResult, error)
}

type Reviews interface {
	ListReviews(ctx context.Context) ([]model.Review, error)
	CreateReview(ctx context.Context, r model.Review) (InsertResult, error)
}

type Profiles interface {
	UpsertProfile(ctx context.Context, p model.UserProfile) (UpdateResult, error)
	GetProfile(ctx context.Context, email string) (model.UserProfile, error)
}

type Store interface {
	Users
	Orders
	Payments
	Products
	Reviews
	Profiles
}
