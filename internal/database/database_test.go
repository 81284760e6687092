package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vethome/internal/models"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestOpenInMemory_Migrates(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer Close(db)

	for _, model := range []interface{}{&models.Client{}, &models.Pet{}, &models.Appointment{}, &models.Preference{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestOpen_MigrationFailureReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readonly.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	db, err := Open("sqlite", "file:"+path+"?mode=ro")
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to migrate database")

	// The file stays usable afterwards.
	db, err = Open("sqlite", "file:"+path)
	require.NoError(t, err)
	assert.NoError(t, Close(db))
}
