// Package firebasestore backs rtdb.Store with a Firebase Realtime Database.
package firebasestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

type Store struct {
	client *db.Client
}

func New(ctx context.Context, databaseURL, credentialsFile string) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.New("firebasestore: database url required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase database: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) ref(path string) (*db.Ref, error) {
	path, err := rtdb.NormalizePath(path)
	if err != nil {
		return nil, err
	}
	return s.client.NewRef(path), nil
}

func (s *Store) Get(ctx context.Context, path string) (rtdb.Value, error) {
	ref, err := s.ref(path)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := ref.Get(ctx, &raw); err != nil {
		return nil, err
	}
	return rtdb.Value(raw), nil
}

func (s *Store) Set(ctx context.Context, path string, v any) error {
	ref, err := s.ref(path)
	if err != nil {
		return err
	}
	if v == nil {
		return ref.Delete(ctx)
	}
	return ref.Set(ctx, v)
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	ref, err := s.ref(path)
	if err != nil {
		return err
	}
	return ref.Update(ctx, fields)
}

func (s *Store) Remove(ctx context.Context, path string) error {
	ref, err := s.ref(path)
	if err != nil {
		return err
	}
	return ref.Delete(ctx)
}

func (s *Store) Push(ctx context.Context, path string, v any) (string, error) {
	ref, err := s.ref(path)
	if err != nil {
		return "", err
	}
	child, err := ref.Push(ctx, v)
	if err != nil {
		return "", err
	}
	return child.Key, nil
}

// Children runs an ordered-by-key query. The database has no exclusive upper
// bound, so EndBefore is emulated with EndAt plus one extra row that is
// dropped afterwards.
func (s *Store) Children(ctx context.Context, path string, q rtdb.Query) ([]rtdb.Node, error) {
	ref, err := s.ref(path)
	if err != nil {
		return nil, err
	}

	query := ref.OrderByKey()
	if q.StartAt != "" {
		query = query.StartAt(q.StartAt)
	}
	endAt := q.EndAt
	if q.EndBefore != "" && (endAt == "" || rtdb.CompareKeys(q.EndBefore, endAt) <= 0) {
		endAt = q.EndBefore
	}
	if endAt != "" {
		query = query.EndAt(endAt)
	}
	switch {
	case q.LimitToLast > 0 && q.EndBefore != "":
		query = query.LimitToLast(q.LimitToLast + 1)
	case q.LimitToLast > 0:
		query = query.LimitToLast(q.LimitToLast)
	case q.LimitToFirst > 0:
		query = query.LimitToFirst(q.LimitToFirst)
	}

	results, err := query.GetOrdered(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(results))
	values := make(map[string]rtdb.Value, len(results))
	for _, r := range results {
		var raw json.RawMessage
		if err := r.Unmarshal(&raw); err != nil {
			return nil, fmt.Errorf("decode child %q: %w", r.Key(), err)
		}
		keys = append(keys, r.Key())
		values[r.Key()] = rtdb.Value(raw)
	}

	keys = rtdb.ApplyQuery(keys, q)
	nodes := make([]rtdb.Node, 0, len(keys))
	for _, k := range keys {
		nodes = append(nodes, rtdb.Node{Key: k, Value: values[k]})
	}
	return nodes, nil
}

func (s *Store) Transaction(ctx context.Context, path string, fn rtdb.TransactionFunc) error {
	ref, err := s.ref(path)
	if err != nil {
		return err
	}
	return ref.Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var raw json.RawMessage
		if err := node.Unmarshal(&raw); err != nil {
			return nil, err
		}
		return fn(rtdb.Value(raw))
	})
}

func (s *Store) Close() error {
	return nil
}

var _ rtdb.Store = (*Store)(nil)
