// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/storage"
)

// LeadRepository implements storage.LeadRepository for BadgerDB.
// Records are keyed by session ID, so a persist per session is idempotent.
type LeadRepository struct {
	backend *Backend
}

var _ storage.LeadRepository = (*LeadRepository)(nil)

// NewLeadRepository creates a new LeadRepository.
func NewLeadRepository(backend *Backend) storage.LeadRepository {
	return &LeadRepository{
		backend: backend,
	}
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *LeadRepository) Close() error {
	return nil
}

// PutLead persists the lead record for its session.
//
// The write is read-merge-write inside one transaction: fields already
// captured in the stored record are kept (first-match-wins), new fields from
// the incoming record are added. A stored record therefore never loses a
// previously captured field.
func (r *LeadRepository) PutLead(ctx context.Context, lead *core.LeadRecord) error {
	if err := core.ValidateLeadRecord(lead); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLeadKey(lead.SessionId)
		now := time.Now().UTC()

		merged := *lead
		merged.CreatedAt = now

		item, err := tx.Get(key)
		switch err {
		case nil:
			var existing *core.LeadRecord
			if err := item.Value(func(val []byte) error {
				var unmarshalErr error
				existing, unmarshalErr = storage.UnmarshalLeadRecord(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			// Stored fields win; merge is additive only.
			stored := *existing
			stored.Merge(&merged)
			stored.UpdatedAt = now
			merged = stored
		case badger.ErrKeyNotFound:
			merged.UpdatedAt = now
		default:
			return err
		}

		if err := tx.Set(key, storage.MarshalLeadRecord(&merged)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetLead retrieves the lead record for a session.
func (r *LeadRepository) GetLead(ctx context.Context, sessionID string) (*core.LeadRecord, error) {
	var result *core.LeadRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLeadKey(sessionID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalLeadRecord(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ListLeads returns every persisted lead record, ordered by session ID.
func (r *LeadRepository) ListLeads(ctx context.Context) ([]*core.LeadRecord, error) {
	var results []*core.LeadRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = leadPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var lead *core.LeadRecord
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				lead, unmarshalErr = storage.UnmarshalLeadRecord(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			results = append(results, lead)
		}
		return nil
	}, false)
	return results, err
}
