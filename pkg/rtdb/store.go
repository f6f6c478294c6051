// Package rtdb defines the hierarchical key/value contract the helmet backend
// persists through: JSON trees addressed by slash separated paths, ordered child
// queries by key, push keys and single-path transactions.
package rtdb

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrInvalidPath = errors.New("rtdb: invalid path")
	ErrInvalidKey  = errors.New("rtdb: invalid key")
)

// Value is the raw JSON of a node. A nil or "null" value means the node does not exist.
type Value []byte

func (v Value) Exists() bool {
	return len(v) > 0 && string(v) != "null"
}

func (v Value) Unmarshal(out any) error {
	if !v.Exists() {
		return nil
	}
	return json.Unmarshal(v, out)
}

type Node struct {
	Key   string
	Value Value
}

// Query selects children of a node ordered by key. Empty bounds are open.
// EndBefore excludes the bound itself and is applied together with EndAt.
type Query struct {
	StartAt      string
	EndAt        string
	EndBefore    string
	LimitToFirst int
	LimitToLast  int
}

// TransactionFunc receives the current value at a path and returns its
// replacement. Returning an error aborts the transaction without writing.
type TransactionFunc func(current Value) (any, error)

type Store interface {
	Get(ctx context.Context, path string) (Value, error)
	Set(ctx context.Context, path string, v any) error
	// Update writes each field as a child of path; a nil field deletes that child.
	Update(ctx context.Context, path string, fields map[string]any) error
	Remove(ctx context.Context, path string) error
	Push(ctx context.Context, path string, v any) (string, error)
	Children(ctx context.Context, path string, q Query) ([]Node, error)
	Transaction(ctx context.Context, path string, fn TransactionFunc) error
	Close() error
}

// GetInto reads path into out and reports whether the node existed.
func GetInto(ctx context.Context, s Store, path string, out any) (bool, error) {
	v, err := s.Get(ctx, path)
	if err != nil {
		return false, err
	}
	if !v.Exists() {
		return false, nil
	}
	if err := v.Unmarshal(out); err != nil {
		return true, err
	}
	return true, nil
}

// ChildrenInto decodes every child of path into a map keyed by child key.
// Children that fail to decode are skipped and reported through skip.
func ChildrenInto[T any](ctx context.Context, s Store, path string, q Query, skip func(key string, err error)) ([]string, map[string]T, error) {
	nodes, err := s.Children(ctx, path, q)
	if err != nil {
		return nil, nil, err
	}
	keys := make([]string, 0, len(nodes))
	out := make(map[string]T, len(nodes))
	for _, n := range nodes {
		var item T
		if err := n.Value.Unmarshal(&item); err != nil {
			if skip != nil {
				skip(n.Key, err)
			}
			continue
		}
		keys = append(keys, n.Key)
		out[n.Key] = item
	}
	return keys, out, nil
}
