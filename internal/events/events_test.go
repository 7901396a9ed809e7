package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNewPaymentConfirmed(t *testing.T) {
	evt := NewPaymentConfirmed("order-1", "tx1", "bob@x.com", 25)

	if evt.ID == "" {
		t.Error("expected event id to be set")
	}
	if evt.Type != TypePaymentConfirmed || evt.Version != 1 {
		t.Errorf("unexpected type/version %s/%d", evt.Type, evt.Version)
	}

	b, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(b, &decoded)
	payload := decoded["payload"].(map[string]any)
	if decoded["order_id"] != "order-1" || payload["transaction_id"] != "tx1" {
		t.Errorf("unexpected wire shape %s", b)
	}

	if NewPaymentConfirmed("order-1", "tx1", "", 0).ID == evt.ID {
		t.Error("expected unique event ids")
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (Nop{}).PublishJSON(context.Background(), TypePaymentConfirmed, struct{}{}); err != nil {
		t.Errorf("Nop.PublishJSON() error = %v", err)
	}
}
