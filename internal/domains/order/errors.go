package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidInput  = errors.New("invalid input")

	// Kết quả validate tham chiếu qua peer services
	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")

	// ErrDependency: peer timeout, không kết nối được hoặc trả lỗi
	ErrDependency = errors.New("dependency unavailable")
)
