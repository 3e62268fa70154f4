package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5"

	"bookstore-microservices/pkg/logger"
)

//go:embed migrations
var migrationFS embed.FS

// Schema names, one directory per service under migrations/.
const (
	SchemaCatalog = "catalog"
	SchemaAccount = "account"
	SchemaOrder   = "order"
)

// RunMigrations áp dụng các file .sql của một service theo thứ tự tên file.
// Các file phải idempotent (CREATE ... IF NOT EXISTS) vì chạy lại mỗi lần start.
func (db *PostgresDB) RunMigrations(ctx context.Context, schema string) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	files, err := MigrationFiles(schema)
	if err != nil {
		return err
	}

	// Một transaction cho cả schema; advisory lock để nhiều replica start cùng lúc không chạy trùng
	err = WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "migrations:"+schema); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}

		for _, name := range files {
			content, err := migrationFS.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read migration %s: %w", name, err)
			}

			logger.Info("applying migration", map[string]interface{}{"file": name})
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("migrations applied", map[string]interface{}{"schema": schema, "count": len(files)})
	return nil
}

// MigrationFiles trả về danh sách file migration (đã sort) của một schema
func MigrationFiles(schema string) ([]string, error) {
	dir := path.Join("migrations", schema)
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", schema, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
