package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)
var _ storage.VectorSearcher = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	idSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DocumentRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDocuments adds one or more documents to storage.
func (r *DocumentRepository) AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if doc.Id == 0 {
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
				doc.Id = core.ID(nextID)
			}

			now := time.Now().UTC()
			if doc.CreatedAt.IsZero() {
				doc.CreatedAt = now
			}
			if doc.UpdatedAt.IsZero() {
				doc.UpdatedAt = now
			}

			if err := r.writeDocument(tx, doc); err != nil {
				return err
			}

			// Team ownership, recency, and access overlay indices
			teamKey := makeDocumentTeamKey(doc.Team, doc.Id)
			if err := tx.Set(teamKey, storage.MarshalID(doc.Id)); err != nil {
				return err
			}
			updKey := makeDocumentUpdatedKey(doc.Team, doc.UpdatedAt, doc.Id)
			if err := tx.Set(updKey, storage.MarshalID(doc.Id)); err != nil {
				return err
			}
			for _, entry := range doc.Access {
				accessKey := makeDocumentAccessKey(entry.User, doc.Id)
				if err := tx.Set(accessKey, storage.MarshalID(doc.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// UpdateDocuments updates existing documents.
func (r *DocumentRepository) UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			key := makeDocumentKey(doc.Id)

			// Read old document to detect index changes
			old, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			doc.UpdatedAt = time.Now().UTC()

			if err := r.writeDocument(tx, doc); err != nil {
				return err
			}

			// Move the team index if ownership changed
			if old.Team != doc.Team {
				oldTeamKey := makeDocumentTeamKey(old.Team, old.Id)
				if err := tx.Delete(oldTeamKey); err != nil {
					return err
				}
				newTeamKey := makeDocumentTeamKey(doc.Team, doc.Id)
				if err := tx.Set(newTeamKey, storage.MarshalID(doc.Id)); err != nil {
					return err
				}
			}

			// Recency index always moves on update
			oldUpdKey := makeDocumentUpdatedKey(old.Team, old.UpdatedAt, old.Id)
			if err := tx.Delete(oldUpdKey); err != nil {
				return err
			}
			newUpdKey := makeDocumentUpdatedKey(doc.Team, doc.UpdatedAt, doc.Id)
			if err := tx.Set(newUpdKey, storage.MarshalID(doc.Id)); err != nil {
				return err
			}

			// Reconcile the access overlay index
			granted := make(map[core.ID]bool, len(doc.Access))
			for _, entry := range doc.Access {
				granted[entry.User] = true
				accessKey := makeDocumentAccessKey(entry.User, doc.Id)
				if err := tx.Set(accessKey, storage.MarshalID(doc.Id)); err != nil {
					return err
				}
			}
			for _, entry := range old.Access {
				if granted[entry.User] {
					continue
				}
				if err := tx.Delete(makeDocumentAccessKey(entry.User, old.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// DeleteDocuments removes documents by their IDs.
func (r *DocumentRepository) DeleteDocuments(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(id)

			// Read document to get metadata for index cleanup
			doc, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if doc == nil {
				return storage.ErrNotFound
			}

			teamKey := makeDocumentTeamKey(doc.Team, doc.Id)
			if err := tx.Delete(teamKey); err != nil {
				return err
			}
			updKey := makeDocumentUpdatedKey(doc.Team, doc.UpdatedAt, doc.Id)
			if err := tx.Delete(updKey); err != nil {
				return err
			}
			for _, entry := range doc.Access {
				if err := tx.Delete(makeDocumentAccessKey(entry.User, doc.Id)); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDocumentKey(id)
		var err error
		result, err = r.readDocument(tx, key)
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

// GetDocuments retrieves multiple documents by their IDs.
func (r *DocumentRepository) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error) {
	var result []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(id)
			doc, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if doc != nil {
				result = append(result, doc)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindByTeams retrieves all documents owned by any of the given teams.
func (r *DocumentRepository) FindByTeams(ctx context.Context, teamIDs []core.ID) ([]*core.Document, error) {
	var results []*core.Document
	err := r.ScanByTeams(ctx, teamIDs, 64, func(batch []*core.Document) error {
		results = append(results, batch...)
		return nil
	})
	return results, err
}

// ScanByTeams streams documents owned by any of the given teams to fn in batches.
func (r *DocumentRepository) ScanByTeams(ctx context.Context, teamIDs []core.ID, batchSize int, fn func([]*core.Document) error) error {
	if batchSize <= 0 {
		batchSize = 64
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		batch := make([]*core.Document, 0, batchSize)

		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := fn(batch); err != nil {
				return err
			}
			batch = make([]*core.Document, 0, batchSize)
			return nil
		}

		for _, teamID := range teamIDs {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := r.forEachTeamDocument(tx, teamID, func(doc *core.Document) error {
				batch = append(batch, doc)
				if len(batch) >= batchSize {
					return flush()
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return flush()
	}, false)
}

// ScanAll streams every stored document to fn in batches, walking the
// primary record prefix directly.
func (r *DocumentRepository) ScanAll(ctx context.Context, batchSize int, fn func([]*core.Document) error) error {
	if batchSize <= 0 {
		batchSize = 64
	}

	prefix := []byte(documentRecordPrefix + ":")

	return r.backend.WithTx(func(tx *badger.Txn) error {
		batch := make([]*core.Document, 0, batchSize)

		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := fn(batch); err != nil {
				return err
			}
			batch = make([]*core.Document, 0, batchSize)
			return nil
		}

		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc *core.Document
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			}); err != nil {
				return err
			}

			batch = append(batch, doc)
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	}, false)
}

// FindGrantedToUser retrieves documents whose access overlay names the user,
// regardless of team ownership.
func (r *DocumentRepository) FindGrantedToUser(ctx context.Context, userID core.ID) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDocumentAccessKey(userID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := iter.Item().Key()
			if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var docID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				docID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			doc, err := r.readDocument(tx, makeDocumentKey(docID))
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	return results, err
}

// RecentByTeams retrieves the most recently updated documents across the given
// teams, newest first, up to limit results.
func (r *DocumentRepository) RecentByTeams(ctx context.Context, teamIDs []core.ID, limit int) ([]*core.Document, error) {
	if limit <= 0 {
		return nil, nil
	}

	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect up to limit per team via reverse iteration on the recency
		// index, then merge across teams.
		for _, teamID := range teamIDs {
			opts := badger.DefaultIteratorOptions
			opts.Reverse = true
			iter := tx.NewIterator(opts)

			// Seek past the newest possible key for this team
			startKey := makePartialDocumentUpdatedKey(teamID, time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
			prefix := makePartialDocumentUpdatedKey(teamID, time.Time{})[:len(documentUpdatedPrefix)+1+8]

			count := 0
			for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
				key := iter.Item().Key()
				if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
					break
				}

				var docID core.ID
				if err := iter.Item().Value(func(val []byte) error {
					var err error
					docID, err = storage.UnmarshalID(val)
					return err
				}); err != nil {
					iter.Close()
					return err
				}

				doc, err := r.readDocument(tx, makeDocumentKey(docID))
				if err != nil {
					iter.Close()
					return err
				}
				if doc != nil {
					results = append(results, doc)
					count++
				}
			}
			iter.Close()
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Document) int {
		if a.UpdatedAt.After(b.UpdatedAt) {
			return -1
		}
		if a.UpdatedAt.Before(b.UpdatedAt) {
			return 1
		}
		return 0
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FindSimilar finds documents in the given teams whose embeddings are similar
// to the query vector. Implements storage.VectorSearcher.
func (r *DocumentRepository) FindSimilar(ctx context.Context, teamIDs []core.ID, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	var results []*core.SimilarityMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, teamID := range teamIDs {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := r.forEachTeamDocument(tx, teamID, func(doc *core.Document) error {
				// Skip documents without a usable embedding, including
				// zero-norm vectors for which cosine is undefined.
				similarity, ok := cosineSimilarity(vector, doc.Embedding)
				if !ok {
					return nil
				}

				if similarity >= minSimilarity {
					results = append(results, &core.SimilarityMatch{
						Document: doc,
						Score:    similarity,
					})
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SimilarityMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// Helper methods

// writeDocument stores the primary document record.
func (r *DocumentRepository) writeDocument(tx *badger.Txn, doc *core.Document) error {
	value, err := storage.MarshalDocument(doc)
	if err != nil {
		return err
	}
	return tx.Set(makeDocumentKey(doc.Id), value)
}

// readDocument reads a document from the transaction.
// Returns nil without error when the key is absent.
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}

// forEachTeamDocument walks a team's ownership index and invokes fn for each
// document found.
func (r *DocumentRepository) forEachTeamDocument(tx *badger.Txn, teamID core.ID, fn func(*core.Document) error) error {
	startKey := makePartialDocumentTeamKey(teamID)
	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()

	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) || slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}

		var docID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			docID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		doc, err := r.readDocument(tx, makeDocumentKey(docID))
		if err != nil {
			return err
		}
		if doc != nil {
			if err := fn(doc); err != nil {
				return err
			}
		}
	}
	return nil
}
