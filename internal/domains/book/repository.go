package book

import "context"

// Repository định nghĩa contract cho data access layer của catalog
type Repository interface {
	// List trả về toàn bộ sách, sắp xếp theo id
	List(ctx context.Context) ([]Book, error)

	// FindByID returns ErrBookNotFound nếu không tồn tại
	FindByID(ctx context.Context, id int64) (*Book, error)

	// Create insert và điền ID, CreatedAt, UpdatedAt vào b
	Create(ctx context.Context, b *Book) error

	// Update áp dụng các field non-nil của patch trong một câu UPDATE
	// Returns: ErrBookNotFound nếu không tồn tại
	Update(ctx context.Context, id int64, patch UpdateBookRequest) (*Book, error)

	// Delete returns ErrBookNotFound nếu không tồn tại
	Delete(ctx context.Context, id int64) error
}
