package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	prefix = "report:"

	prefixByID   = prefix + "id:"
	prefixByPath = prefix + "path:"
)

// Repository persists inspection reports in badger. Reports are stored by
// ID; a per-path index always points at the most recent report for that
// path.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new report and updates the latest-by-path index.
func (r *Repository) Create(_ context.Context, model *reportModel) error {
	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		key := r.getByIDKey(model.ID)
		if setErr := txn.Set(key, data); setErr != nil {
			return fmt.Errorf("failed to store report: %w", setErr)
		}

		if setErr := txn.Set(r.getByPathKey(model.Path), key); setErr != nil {
			return fmt.Errorf("failed to index report by path: %w", setErr)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	var model *reportModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err != nil {
			return err
		}
		model = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return newReport(model), nil
}

// GetLatestByPath retrieves the most recent report stored for a path.
func (r *Repository) GetLatestByPath(_ context.Context, path string) (*Report, error) {
	var model *reportModel

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(r.getByPathKey(path))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: no report for path %q", ErrNotFound, path)
			}
			return fmt.Errorf("failed to read path index: %w", err)
		}

		key, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("failed to read path index value: %w", err)
		}

		item, err = txn.Get(key)
		if err != nil {
			return fmt.Errorf("failed to get indexed report: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &model)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}

	return newReport(model), nil
}

// List returns all stored reports.
func (r *Repository) List(_ context.Context) ([]Report, error) {
	var reports []Report

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixByID)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefixByID)); it.ValidForPrefix([]byte(prefixByID)); it.Next() {
			var model reportModel
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &model)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal report: %w", err)
			}
			reports = append(reports, *newReport(&model))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, nil
}

// Delete removes a report by ID, dropping the path index when it still
// points at the deleted report.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		model, err := r.getByID(txn, id)
		if err != nil {
			return err
		}

		pathKey := r.getByPathKey(model.Path)
		if item, getErr := txn.Get(pathKey); getErr == nil {
			indexed, copyErr := item.ValueCopy(nil)
			if copyErr == nil && string(indexed) == string(r.getByIDKey(id)) {
				if delErr := txn.Delete(pathKey); delErr != nil {
					return fmt.Errorf("failed to delete path index: %w", delErr)
				}
			}
		}

		if delErr := txn.Delete(r.getByIDKey(id)); delErr != nil {
			return fmt.Errorf("failed to delete report: %w", delErr)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*reportModel, error) {
	item, err := txn.Get(r.getByIDKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var model *reportModel
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &model)
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return model, nil
}

func (r *Repository) getByIDKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

func (r *Repository) getByPathKey(path string) []byte {
	return []byte(prefixByPath + path)
}
