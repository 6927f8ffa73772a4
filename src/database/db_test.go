package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth_NilPool(t *testing.T) {
	db := NewDatabaseFromPool(nil)
	assert.Error(t, db.Health(context.Background()))

	var nilDB *Database
	assert.Error(t, nilDB.Health(context.Background()))
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS client_storage")
}

func TestInitializeSchema_Idempotent(t *testing.T) {
	WithTestDB(t, func(tdb *TestDB) {
		db := NewDatabaseFromPool(tdb.Pool)
		assert.NoError(t, db.InitializeSchema(context.Background()))
		assert.NoError(t, db.InitializeSchema(context.Background()))
		assert.NoError(t, db.Health(context.Background()))
	})
}
