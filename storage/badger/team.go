package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// TeamRepository implements storage.TeamRepository for BadgerDB.
type TeamRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TeamRepository = (*TeamRepository)(nil)

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(backend *Backend) (*TeamRepository, error) {
	idSeq, err := backend.GetSequence(teamIDSeq)
	if err != nil {
		return nil, err
	}

	return &TeamRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TeamRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *TeamRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTeams adds one or more teams to storage.
func (r *TeamRepository) AddTeams(ctx context.Context, teams ...*core.Team) ([]*core.Team, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, team := range teams {
			if team.Id == 0 {
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
				team.Id = core.ID(nextID)
			}

			now := time.Now().UTC()
			if team.CreatedAt.IsZero() {
				team.CreatedAt = now
			}
			team.UpdatedAt = now

			if err := writeTeam(tx, team); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return teams, err
}

// UpdateTeams updates existing teams.
func (r *TeamRepository) UpdateTeams(ctx context.Context, teams ...*core.Team) ([]*core.Team, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, team := range teams {
			key := makeTeamKey(team.Id)

			old, err := readTeam(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			team.UpdatedAt = time.Now().UTC()

			if err := writeTeam(tx, team); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return teams, err
}

// DeleteTeams removes teams by their IDs.
func (r *TeamRepository) DeleteTeams(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTeamKey(id)

			team, err := readTeam(tx, key)
			if err != nil {
				return err
			}
			if team == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTeam retrieves a single team by ID.
func (r *TeamRepository) GetTeam(ctx context.Context, id core.ID) (*core.Team, error) {
	var result *core.Team
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTeamKey(id)
		var err error
		result, err = readTeam(tx, key)
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

// GetTeams retrieves multiple teams by their IDs.
func (r *TeamRepository) GetTeams(ctx context.Context, ids ...core.ID) ([]*core.Team, error) {
	var result []*core.Team
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTeamKey(id)
			team, err := readTeam(tx, key)
			if err != nil {
				return err
			}
			if team != nil {
				result = append(result, team)
			}
		}
		return nil
	}, false)
	return result, err
}

// Helper functions

func writeTeam(tx *badger.Txn, team *core.Team) error {
	value, err := storage.MarshalTeam(team)
	if err != nil {
		return err
	}
	return tx.Set(makeTeamKey(team.Id), value)
}

// readTeam reads a team from the transaction.
// Returns nil without error when the key is absent.
func readTeam(tx *badger.Txn, key []byte) (*core.Team, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var team *core.Team
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		team, unmarshalErr = storage.UnmarshalTeam(val)
		return unmarshalErr
	})
	return team, err
}
