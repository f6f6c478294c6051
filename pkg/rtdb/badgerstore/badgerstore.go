// Package badgerstore keeps the helmet tree in an embedded badger database,
// one key per leaf path.
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

type Options struct {
	// Path is ignored when InMemory is set.
	Path       string
	InMemory   bool
	SyncWrites bool
}

// zapLogger adapts zap to badger's logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l zapLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l zapLogger) Infof(format string, args ...interface{})    { l.s.Infof(format, args...) }
func (l zapLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

func Open(opts Options) (*rtdb.TreeStore, error) {
	if !opts.InMemory && opts.Path == "" {
		return nil, errors.New("badgerstore: path required for persistent store")
	}

	bopts := badger.DefaultOptions(opts.Path).
		WithInMemory(opts.InMemory).
		WithSyncWrites(opts.SyncWrites).
		WithNumVersionsToKeep(1)
	if opts.InMemory {
		bopts = bopts.WithLogger(nil)
	} else {
		bopts = bopts.WithLogger(zapLogger{s: common.GetLoggerWith(common.LoggerNameStore).Sugar()})
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return rtdb.NewTreeStore(&backend{db: db}), nil
}

// OpenInMemory is the store used by tests and the "memory" deployment mode.
func OpenInMemory() (*rtdb.TreeStore, error) {
	return Open(Options{InMemory: true})
}

type backend struct {
	db *badger.DB
}

func (b *backend) View(ctx context.Context, fn func(rtdb.LeafTxn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(txn *badger.Txn) error {
		return fn(&leafTxn{txn: txn})
	})
}

func (b *backend) Update(ctx context.Context, fn func(rtdb.LeafTxn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return fn(&leafTxn{txn: txn})
	})
}

func (b *backend) Close() error {
	return b.db.Close()
}

type leafTxn struct {
	txn *badger.Txn
}

func (t *leafTxn) each(path string, visit func(item *badger.Item) error) error {
	if path != "" {
		item, err := t.txn.Get([]byte(path))
		switch {
		case err == nil:
			if err := visit(item); err != nil {
				return err
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
	}

	prefix := []byte(path + "/")
	if path == "" {
		prefix = nil
	}
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := visit(it.Item()); err != nil {
			return err
		}
	}
	return nil
}

func (t *leafTxn) Scan(prefix string) (map[string][]byte, error) {
	out := map[string][]byte{}
	err := t.each(prefix, func(item *badger.Item) error {
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		out[string(item.KeyCopy(nil))] = raw
		return nil
	})
	return out, err
}

func (t *leafTxn) Put(path string, raw []byte) error {
	return t.txn.Set([]byte(path), raw)
}

func (t *leafTxn) Delete(path string) error {
	return t.txn.Delete([]byte(path))
}

func (t *leafTxn) DeleteTree(path string) error {
	var keys [][]byte
	if err := t.each(path, func(item *badger.Item) error {
		keys = append(keys, item.KeyCopy(nil))
		return nil
	}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := t.txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
