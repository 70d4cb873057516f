package badger

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestWithTxRetriesOnConflict(t *testing.T) {
	backend := newTestBackend(t)
	key := []byte("contested")

	if err := backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(key, []byte("initial")); err != nil {
			return err
		}
		return tx.Commit()
	}, true); err != nil {
		t.Fatalf("Failed to seed key: %v", err)
	}

	attempts := 0
	err := backend.WithTx(func(tx *badger.Txn) error {
		attempts++

		// Put the key in this transaction's read set.
		if _, err := tx.Get(key); err != nil {
			return err
		}

		// On the first attempt, land a competing write so this
		// transaction's commit aborts with ErrConflict.
		if attempts == 1 {
			other := backend.db.NewTransaction(true)
			defer other.Discard()
			if err := other.Set(key, []byte("competing")); err != nil {
				return err
			}
			if err := other.Commit(); err != nil {
				return err
			}
		}

		if err := tx.Set(key, []byte("updated")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		t.Fatalf("Expected retried transaction to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("Expected 2 attempts, got %d", attempts)
	}

	err = backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if string(val) != "updated" {
				t.Fatalf("Expected 'updated', got '%s'", val)
			}
			return nil
		})
	}, false)
	if err != nil {
		t.Fatalf("Failed to read key back: %v", err)
	}
}
