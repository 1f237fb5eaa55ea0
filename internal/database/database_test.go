package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/admin/internal/database"
)

func TestNew_SQLite(t *testing.T) {
	db, err := database.New(database.DriverSQLite, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := database.New("mysql", "dsn")
	assert.Error(t, err)
}
