package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/divyamvijayvargia/capstone-portal/internal/app/system/txn"
	"github.com/divyamvijayvargia/capstone-portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unrelated error", errors.New("connection reset by peer"), false},
		{"standalone mongod code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"}, true},
		{"illegal operation code", mongo.CommandError{Code: 51, Message: "Illegal operation"}, true},
		{"retryable write code", mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"}, true},
		{"other command code", mongo.CommandError{Code: 11000, Message: "duplicate key"}, false},
		{"replica set message", errors.New("transaction failed: this is not a replica set member"), true},
		{"session unsupported message", errors.New("session operations are not supported on this server"), true},
		{"transaction alone", errors.New("transaction aborted"), false},
		{"transaction plus session", errors.New("cannot start transaction in current session state"), true},
		{"illegal operation message", errors.New("illegal operation during transaction"), true},
		{"uppercase message", errors.New("TRANSACTION FAILED on REPLICA SET"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// A standalone test mongod cannot run transactions, so Run must fall back to
// executing fn directly. The accept cascade relies on this in dev and CI.
func TestRun_FallsBackOnStandalone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("txn_probe")
	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		_, err := coll.InsertOne(ctx, bson.M{"_id": "probe"})
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	n, err := coll.CountDocuments(ctx, bson.M{"_id": "probe"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected the write to land, found %d docs", n)
	}
}

func TestRun_PropagatesFnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	want := errors.New("boom")
	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Run returned %v, want %v", err, want)
	}
}
