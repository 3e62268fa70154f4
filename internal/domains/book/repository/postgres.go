package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-microservices/internal/domains/book"
	"bookstore-microservices/pkg/cache"
	"bookstore-microservices/pkg/logger"
)

// postgresRepository là implementation của book.Repository (raw SQL với pgxpool)
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) book.Repository {
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

const bookColumns = `id, title, author, year, created_at, updated_at`

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}

// FindByID - Cache-Aside: cache trước, miss thì query DB rồi set cache.
// cacheTTL <= 0 tắt cache (Redis coi TTL 0 là không hết hạn).
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	cacheKey := book.CacheKey(id)

	if r.cacheTTL > 0 {
		var cached book.Book
		if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	b, err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}

	// Lỗi cache không làm fail request
	if r.cacheTTL > 0 {
		_ = r.cache.Set(ctx, cacheKey, b, r.cacheTTL)
	}

	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (title, author, year)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, b.Title, b.Author, b.Year).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Update: COALESCE giữ nguyên giá trị cũ cho field không được gửi
func (r *postgresRepository) Update(ctx context.Context, id int64, patch book.UpdateBookRequest) (*book.Book, error) {
	query := `
		UPDATE books SET
			title      = COALESCE($2, title),
			author     = COALESCE($3, author),
			year       = COALESCE($4, year),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookColumns

	b, err := scanBook(r.pool.QueryRow(ctx, query, id, patch.Title, patch.Author, patch.Year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	r.invalidate(ctx, id)
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, book.CacheKey(id)); err != nil {
		logger.Warn("failed to invalidate book cache", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
	}
}
