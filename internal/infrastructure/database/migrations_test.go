package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	for _, schema := range []string{SchemaCatalog, SchemaAccount, SchemaOrder} {
		files, err := MigrationFiles(schema)
		require.NoError(t, err, schema)
		assert.NotEmpty(t, files, schema)
	}

	_, err := MigrationFiles("unknown")
	assert.Error(t, err)
}

func TestBuildConnectionString(t *testing.T) {
	db := &PostgresDB{}
	db.Config.User = "book store"
	db.Config.Password = "p@ss"
	db.Config.Host = "db"
	db.Config.Port = 5432
	db.Config.Name = "catalog"
	db.Config.SSLMode = "disable"

	assert.Equal(t, "postgresql://book%20store:p%40ss@db:5432/catalog?sslmode=disable", db.buildConnectionString())
}
