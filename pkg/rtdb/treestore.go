package rtdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// LeafTxn is a transaction over flattened leaves: one entry per scalar, keyed
// by its full path.
type LeafTxn interface {
	// Scan returns the leaf at prefix and every leaf below it. An empty prefix scans everything.
	Scan(prefix string) (map[string][]byte, error)
	Put(path string, raw []byte) error
	Delete(path string) error
	// DeleteTree removes the leaf at path and every leaf below it.
	DeleteTree(path string) error
}

type LeafBackend interface {
	View(ctx context.Context, fn func(LeafTxn) error) error
	Update(ctx context.Context, fn func(LeafTxn) error) error
	Close() error
}

// TreeStore implements Store on top of any LeafBackend. Writers are serialized
// so read-modify-write transactions see a stable tree within one process.
type TreeStore struct {
	backend LeafBackend
	mu      sync.Mutex
	newKey  func() (string, error)
}

func NewTreeStore(backend LeafBackend) *TreeStore {
	return &TreeStore{backend: backend, newKey: pushKey}
}

// pushKey returns time ordered keys so pushed children list chronologically.
func pushKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *TreeStore) Get(ctx context.Context, path string) (Value, error) {
	path, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	var out Value
	err = s.backend.View(ctx, func(txn LeafTxn) error {
		leaves, err := txn.Scan(path)
		if err != nil {
			return err
		}
		out, err = encode(build(path, leaves))
		return err
	})
	return out, err
}

func setIn(txn LeafTxn, path string, v any) error {
	generic, err := toGeneric(v)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", path, err)
	}
	leaves := map[string][]byte{}
	if err := flatten(path, generic, leaves); err != nil {
		return err
	}
	if err := txn.DeleteTree(path); err != nil {
		return err
	}
	if path != "" {
		for _, a := range ancestors(path) {
			if err := txn.Delete(a); err != nil {
				return err
			}
		}
	}
	for p, raw := range leaves {
		if err := txn.Put(p, raw); err != nil {
			return err
		}
	}
	return nil
}

func (s *TreeStore) write(ctx context.Context, fn func(LeafTxn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Update(ctx, fn)
}

func (s *TreeStore) Set(ctx context.Context, path string, v any) error {
	path, err := NormalizePath(path)
	if err != nil {
		return err
	}
	return s.write(ctx, func(txn LeafTxn) error {
		return setIn(txn, path, v)
	})
}

func (s *TreeStore) Update(ctx context.Context, path string, fields map[string]any) error {
	path, err := NormalizePath(path)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	targets := make(map[string]any, len(fields))
	for k, v := range fields {
		child, err := NormalizePath(Join(path, k))
		if err != nil {
			return err
		}
		if child == path {
			return fmt.Errorf("%w: empty update key", ErrInvalidKey)
		}
		targets[child] = v
	}
	return s.write(ctx, func(txn LeafTxn) error {
		for p, v := range targets {
			if err := setIn(txn, p, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TreeStore) Remove(ctx context.Context, path string) error {
	path, err := NormalizePath(path)
	if err != nil {
		return err
	}
	return s.write(ctx, func(txn LeafTxn) error {
		return txn.DeleteTree(path)
	})
}

func (s *TreeStore) Push(ctx context.Context, path string, v any) (string, error) {
	key, err := s.newKey()
	if err != nil {
		return "", err
	}
	if err := s.Set(ctx, Join(path, key), v); err != nil {
		return "", err
	}
	return key, nil
}

func (s *TreeStore) Children(ctx context.Context, path string, q Query) ([]Node, error) {
	path, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	var nodes []Node
	err = s.backend.View(ctx, func(txn LeafTxn) error {
		leaves, err := txn.Scan(path)
		if err != nil {
			return err
		}
		groups := childGroups(path, leaves)
		keys := make([]string, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		SortKeys(keys)
		keys = ApplyQuery(keys, q)

		nodes = make([]Node, 0, len(keys))
		for _, k := range keys {
			childPath := Join(path, k)
			v, err := encode(build(childPath, groups[k]))
			if err != nil {
				return err
			}
			nodes = append(nodes, Node{Key: k, Value: v})
		}
		return nil
	})
	return nodes, err
}

func (s *TreeStore) Transaction(ctx context.Context, path string, fn TransactionFunc) error {
	path, err := NormalizePath(path)
	if err != nil {
		return err
	}
	return s.write(ctx, func(txn LeafTxn) error {
		leaves, err := txn.Scan(path)
		if err != nil {
			return err
		}
		current, err := encode(build(path, leaves))
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return setIn(txn, path, next)
	})
}

func (s *TreeStore) Close() error {
	return s.backend.Close()
}
