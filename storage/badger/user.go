package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// UserRepository implements storage.UserRepository for BadgerDB.
type UserRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(backend *Backend) (*UserRepository, error) {
	idSeq, err := backend.GetSequence(userIDSeq)
	if err != nil {
		return nil, err
	}

	return &UserRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *UserRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *UserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddUsers adds one or more users to storage. Emails are unique.
func (r *UserRepository) AddUsers(ctx context.Context, users ...*core.User) ([]*core.User, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, user := range users {
			user.Email = core.NormalizeEmail(user.Email)

			// Reject a second user with the same email
			emailKey := makeUserEmailKey(user.Email)
			if _, err := tx.Get(emailKey); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			if user.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				user.Id = core.ID(nextID)
			}

			now := time.Now().UTC()
			if user.CreatedAt.IsZero() {
				user.CreatedAt = now
			}
			user.UpdatedAt = now

			if err := writeUser(tx, user); err != nil {
				return err
			}
			if err := tx.Set(emailKey, storage.MarshalID(user.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return users, err
}

// UpdateUsers updates existing users.
func (r *UserRepository) UpdateUsers(ctx context.Context, users ...*core.User) ([]*core.User, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, user := range users {
			key := makeUserKey(user.Id)

			old, err := readUser(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			user.Email = core.NormalizeEmail(user.Email)
			user.UpdatedAt = time.Now().UTC()

			// Move the email index if the address changed
			if old.Email != user.Email {
				newEmailKey := makeUserEmailKey(user.Email)
				if _, err := tx.Get(newEmailKey); err == nil {
					return storage.ErrDuplicateKey
				} else if err != badger.ErrKeyNotFound {
					return err
				}
				if err := tx.Delete(makeUserEmailKey(old.Email)); err != nil {
					return err
				}
				if err := tx.Set(newEmailKey, storage.MarshalID(user.Id)); err != nil {
					return err
				}
			}

			if err := writeUser(tx, user); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return users, err
}

// GetUser retrieves a single user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id core.ID) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUserKey(id)
		var err error
		result, err = readUser(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetUsers retrieves multiple users by their IDs.
func (r *UserRepository) GetUsers(ctx context.Context, ids ...core.ID) ([]*core.User, error) {
	var result []*core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeUserKey(id)
			user, err := readUser(tx, key)
			if err != nil {
				return err
			}
			if user != nil {
				result = append(result, user)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindByEmail retrieves a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	email = core.NormalizeEmail(email)

	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeUserEmailKey(email))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var userID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			userID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readUser(tx, makeUserKey(userID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// TeamsForUser returns the IDs of the teams the user belongs to.
func (r *UserRepository) TeamsForUser(ctx context.Context, id core.ID) ([]core.ID, error) {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Teams, nil
}

// Helper functions

func writeUser(tx *badger.Txn, user *core.User) error {
	value, err := storage.MarshalUser(user)
	if err != nil {
		return err
	}
	return tx.Set(makeUserKey(user.Id), value)
}

// readUser reads a user from the transaction.
// Returns nil without error when the key is absent.
func readUser(tx *badger.Txn, key []byte) (*core.User, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var user *core.User
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		user, unmarshalErr = storage.UnmarshalUser(val)
		return unmarshalErr
	})
	return user, err
}
