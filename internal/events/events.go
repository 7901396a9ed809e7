package events

import (
	"time"

	"github.com/google/uuid"
)

const TypePaymentConfirmed = "payment.confirmed"

type Event[T any] struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Time    time.Time `json:"time"`
	OrderID string    `json:"order_id"`
	Payload T         `json:"payload"`
}

type PaymentConfirmedPayload struct {
	TransactionID string  `json:"transaction_id"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	Amount        float64 `json:"amount"`
}

func NewPaymentConfirmed(orderID, transactionID, email string, amount float64) Event[PaymentConfirmedPayload] {
	return Event[PaymentConfirmedPayload]{
		ID:      uuid.NewString(),
		Type:    TypePaymentConfirmed,
		Version: 1,
		Time:    time.Now().UTC(),
		OrderID: orderID,
		Payload: PaymentConfirmedPayload{
			TransactionID: transactionID,
			CustomerEmail: email,
			Amount:        amount,
		},
	}
}
