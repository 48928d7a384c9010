// Package repositories persists analysis verdicts: BadgerDB is the
// source of truth, Bluge provides full-text search over it.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"agent-lab/domain"
)

const archivePrefix = "analysis:"

// StoredAnalysis is one archived verdict with its storage metadata.
type StoredAnalysis struct {
	Key    string
	At     time.Time
	Record domain.Analysis
}

type archiveEnvelope struct {
	At     time.Time       `json:"at"`
	Record domain.Analysis `json:"record"`
}

type IArchiveRepository interface {
	Store(record domain.Analysis) error
	Recent(limit int) ([]StoredAnalysis, error)
	Search(ctx context.Context, query string, limit int) ([]StoredAnalysis, error)
}

// ArchiveRepository writes each verdict under a timestamp-ordered key
// and mirrors the searchable fields into the Bluge index. Entries are
// append-only.
type ArchiveRepository struct {
	db     *badger.DB
	writer *bluge.Writer
	log    *slog.Logger
	now    func() time.Time
}

func NewArchiveRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger) *ArchiveRepository {
	return &ArchiveRepository{db: db, writer: writer, log: log, now: time.Now}
}

// Store archives one verdict. The zero-padded nanosecond timestamp in
// the key keeps lexicographic order equal to chronological order, so
// Recent is a plain reverse scan.
func (r *ArchiveRepository) Store(record domain.Analysis) error {
	at := r.now().UTC()
	key := fmt.Sprintf("%s%019d:%s", archivePrefix, at.UnixNano(), uuid.New())

	payload, err := json.Marshal(archiveEnvelope{At: at, Record: record})
	if err != nil {
		return err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
	if err != nil {
		return err
	}

	doc := bluge.NewDocument(key).
		AddField(bluge.NewTextField("message", record.Message)).
		AddField(bluge.NewTextField("summary", record.Summary)).
		AddField(bluge.NewKeywordField("sender", record.Sender)).
		AddField(bluge.NewKeywordField("priority", string(record.Priority))).
		AddField(bluge.NewKeywordField("category", string(record.Category)))

	if err := r.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index update: %w", err)
	}

	r.log.Debug("verdict archived", slog.String("key", key))
	return nil
}

// Recent returns the newest verdicts first.
func (r *ArchiveRepository) Recent(limit int) ([]StoredAnalysis, error) {
	var out []StoredAnalysis

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode the seek key must sort after every archive
		// key; 0xFF never occurs in them.
		seek := append([]byte(archivePrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix([]byte(archivePrefix)) && len(out) < limit; it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				var envelope archiveEnvelope
				if err := json.Unmarshal(v, &envelope); err != nil {
					return fmt.Errorf("corrupt archive entry %s: %w", key, err)
				}
				out = append(out, StoredAnalysis{Key: key, At: envelope.At, Record: envelope.Record})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search runs a full-text match over message bodies and summaries and
// resolves the hits back to the archived verdicts.
func (r *ArchiveRepository) Search(ctx context.Context, query string, limit int) ([]StoredAnalysis, error) {
	reader, err := r.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("index reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	match := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(query).SetField("message")).
		AddShould(bluge.NewMatchQuery(query).SetField("summary")).
		SetMinShould(1)

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, match))
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	var keys []string
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				keys = append(keys, string(value))
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}

	return r.fetch(keys)
}

func (r *ArchiveRepository) fetch(keys []string) ([]StoredAnalysis, error) {
	out := make([]StoredAnalysis, 0, len(keys))

	err := r.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if err != nil {
				// The index can briefly run ahead of a compaction; a
				// missing entry is not fatal to the whole search.
				r.log.Warn("indexed entry missing from store", slog.String("key", key))
				continue
			}
			err = item.Value(func(v []byte) error {
				var envelope archiveEnvelope
				if err := json.Unmarshal(v, &envelope); err != nil {
					return fmt.Errorf("corrupt archive entry %s: %w", key, err)
				}
				out = append(out, StoredAnalysis{Key: key, At: envelope.At, Record: envelope.Record})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
