package order

import "context"

// Repository - chỉ đọc/ghi database riêng của order service
type Repository interface {
	// List trả về toàn bộ orders theo thứ tự id tăng dần
	List(ctx context.Context) ([]Order, error)

	// FindByID returns ErrOrderNotFound nếu không tồn tại
	FindByID(ctx context.Context, id int64) (*Order, error)

	// Create điền ID, OrderDate, Status, CreatedAt, UpdatedAt từ database
	Create(ctx context.Context, o *Order) error
}
