package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/events"
	"cakeries-backend/internal/model"
	"cakeries-backend/internal/store"
)

var cardOnly = []string{"card"}

type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

type Intent struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type Confirmation struct {
	OrderID       string
	TransactionID string
	Amount        float64
	CustomerEmail string
}

// Orchestrator drives an order from created to paid. Intents live only at
// the gateway; nothing is stored locally until Confirm.
type Orchestrator struct {
	gateway  Gateway
	payments store.Payments
	events   Publisher
	currency string
	log      zerolog.Logger
}

func NewOrchestrator(gateway Gateway, payments store.Payments, events Publisher, currency string, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		gateway:  gateway,
		payments: payments,
		events:   events,
		currency: strings.ToLower(currency),
		log:      log,
	}
}

func (o *Orchestrator) CreateIntent(ctx context.Context, totalPrice float64) (Intent, error) {
	amount, err := ToMinorUnits(totalPrice)
	if err != nil {
		return Intent{}, err
	}

	secret, err := o.gateway.CreatePaymentIntent(ctx, amount, o.currency, cardOnly)
	if err != nil {
		o.log.Error().Err(err).Int64("amount", amount).Msg("create payment intent failed")
		if !errors.Is(err, apperr.ErrGateway) {
			err = fmt.Errorf("%w: %v", apperr.ErrGateway, err)
		}
		return Intent{}, err
	}

	return Intent{ClientSecret: secret, Amount: amount, Currency: o.currency}, nil
}

// Confirm records the payment and marks the order paid in one transaction.
// A repeated confirmation with the same transaction id is a no-op.
func (o *Orchestrator) Confirm(ctx context.Context, c Confirmation) (store.UpdateResult, error) {
	if strings.TrimSpace(c.TransactionID) == "" {
		return store.UpdateResult{}, fmt.Errorf("%w: transactionId is required", apperr.ErrValidation)
	}

	res, err := o.payments.ConfirmPayment(ctx, model.Payment{
		OrderID:       c.OrderID,
		TransactionID: c.TransactionID,
		Amount:        c.Amount,
		CustomerEmail: c.CustomerEmail,
	})
	if err != nil {
		return store.UpdateResult{}, err
	}
	if res.ModifiedCount == 0 {
		return res, nil
	}

	o.log.Info().Str("order_id", c.OrderID).Str("transaction_id", c.TransactionID).Msg("order paid")

	evt := events.NewPaymentConfirmed(c.OrderID, c.TransactionID, c.CustomerEmail, c.Amount)
	if err := o.events.PublishJSON(ctx, evt.Type, evt); err != nil {
		o.log.Warn().Err(err).Str("order_id", c.OrderID).Msg("publish payment.confirmed failed")
	}
	return res, nil
}
