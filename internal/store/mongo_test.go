package store

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// newTestMongo connects to the replica set named by MONGO_URL and hands out a
// throwaway database that is dropped when the test ends.
func newTestMongo(t *testing.T) *Mongo {
	t.Helper()
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		t.Skip("MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := "cakeries_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	m, err := Connect(ctx, uri, name)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.db.Drop(ctx); err != nil {
			t.Logf("drop %s: %v", name, err)
		}
		_ = m.Close(ctx)
	})
	return m
}

func TestMongo_Ping(t *testing.T) {
	m := newTestMongo(t)
	if err := m.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestMongo_OrderWritesOnMissingIDAreNoOps(t *testing.T) {
	checkOrderWritesOnMissingID(t, newTestMongo(t))
}

func TestMongo_ConfirmPayment(t *testing.T) {
	checkConfirmPayment(t, newTestMongo(t))
}

func TestMongo_PaidOrderIsNotRewritten(t *testing.T) {
	checkPaidOrderIsNotRewritten(t, newTestMongo(t))
}
