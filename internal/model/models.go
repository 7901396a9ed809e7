package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL     string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	MinOrder    int                `bson:"minOrder,omitempty" json:"minOrder,omitempty"`
}

// Order is owned by CustomerEmail. Paid flips to true once and never back.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	CustomerName  string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	ProductID     string             `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName   string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Quantity      int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// OwnedBy reports whether email is the customer the order was placed for.
func (o Order) OwnedBy(email string) bool {
	return email != "" && o.CustomerEmail == email
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
	CustomerEmail string             `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type UserProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn  string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}
