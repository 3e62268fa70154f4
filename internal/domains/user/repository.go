package user

import "context"

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create tạo user mới, điền ID và timestamps
	// Returns: ErrEmailAlreadyExists nếu email đã tồn tại
	Create(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail (dùng cho login) returns ErrUserNotFound nếu không tìm thấy
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail kiểm tra email đã tồn tại chưa
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
