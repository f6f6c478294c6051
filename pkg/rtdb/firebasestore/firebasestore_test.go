package firebasestore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/storetest"
)

func TestNewRequiresURL(t *testing.T) {
	_, err := New(context.Background(), "", "")
	assert.Error(t, err)
}

// scopedStore keeps each integration run under its own root so runs never collide.
type scopedStore struct {
	*Store
	root string
}

func (s *scopedStore) p(path string) string { return rtdb.Join(s.root, path) }

func (s *scopedStore) Get(ctx context.Context, path string) (rtdb.Value, error) {
	return s.Store.Get(ctx, s.p(path))
}
func (s *scopedStore) Set(ctx context.Context, path string, v any) error {
	return s.Store.Set(ctx, s.p(path), v)
}
func (s *scopedStore) Update(ctx context.Context, path string, f map[string]any) error {
	return s.Store.Update(ctx, s.p(path), f)
}
func (s *scopedStore) Remove(ctx context.Context, path string) error {
	return s.Store.Remove(ctx, s.p(path))
}
func (s *scopedStore) Push(ctx context.Context, path string, v any) (string, error) {
	return s.Store.Push(ctx, s.p(path), v)
}
func (s *scopedStore) Children(ctx context.Context, path string, q rtdb.Query) ([]rtdb.Node, error) {
	return s.Store.Children(ctx, s.p(path), q)
}
func (s *scopedStore) Transaction(ctx context.Context, path string, fn rtdb.TransactionFunc) error {
	return s.Store.Transaction(ctx, s.p(path), fn)
}

func TestFirebaseStore(t *testing.T) {
	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" || os.Getenv(common.EnvKeyFirebaseDatabaseURL) == "" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS and FIREBASE_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, os.Getenv(common.EnvKeyFirebaseDatabaseURL), os.Getenv(common.EnvKeyFirebaseCredentialsFile))
	require.NoError(t, err)

	storetest.Run(t, func(t *testing.T) rtdb.Store {
		scoped := &scopedStore{Store: store, root: rtdb.Join("_test", uuid.NewString())}
		t.Cleanup(func() { _ = store.Remove(ctx, scoped.root) })
		return scoped
	})
}
