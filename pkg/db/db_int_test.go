package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

func TestWithEnvPath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	testPath := filepath.Join(t.TempDir(), "helmets.db")
	t.Setenv(common.EnvKeyHelmetDbPath, testPath)

	instance, err := New(UseSqliteDialector())
	require.NoError(t, err)

	store := instance.Store()
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "helmets/H1/location", "Shaft 4"))

	var loc string
	found, err := rtdb.GetInto(context.Background(), store, "helmets/H1/location", &loc)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Shaft 4", loc)

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
}
