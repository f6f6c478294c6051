package rtdb_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/storetest"
)

// mapBackend is the smallest LeafBackend possible: a mutex guarded map with
// copy-on-write transactions.
type mapBackend struct {
	mu     sync.RWMutex
	leaves map[string][]byte
}

type mapTxn struct {
	leaves map[string][]byte
}

func (t *mapTxn) Scan(prefix string) (map[string][]byte, error) {
	out := map[string][]byte{}
	for k, v := range t.leaves {
		if prefix == "" || k == prefix || strings.HasPrefix(k, prefix+"/") {
			out[k] = v
		}
	}
	return out, nil
}

func (t *mapTxn) Put(path string, raw []byte) error {
	t.leaves[path] = raw
	return nil
}

func (t *mapTxn) Delete(path string) error {
	delete(t.leaves, path)
	return nil
}

func (t *mapTxn) DeleteTree(path string) error {
	for k := range t.leaves {
		if path == "" || k == path || strings.HasPrefix(k, path+"/") {
			delete(t.leaves, k)
		}
	}
	return nil
}

func (b *mapBackend) snapshot() map[string][]byte {
	cp := make(map[string][]byte, len(b.leaves))
	for k, v := range b.leaves {
		cp[k] = v
	}
	return cp
}

func (b *mapBackend) View(_ context.Context, fn func(rtdb.LeafTxn) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return fn(&mapTxn{leaves: b.snapshot()})
}

func (b *mapBackend) Update(_ context.Context, fn func(rtdb.LeafTxn) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	txn := &mapTxn{leaves: b.snapshot()}
	if err := fn(txn); err != nil {
		return err
	}
	b.leaves = txn.leaves
	return nil
}

func (b *mapBackend) Close() error { return nil }

func TestTreeStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) rtdb.Store {
		return rtdb.NewTreeStore(&mapBackend{leaves: map[string][]byte{}})
	})
}
