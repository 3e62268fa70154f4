package book

import "context"

// Service định nghĩa business logic layer contract
type Service interface {
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id int64) (*Book, error)
	CreateBook(ctx context.Context, req CreateBookRequest) (*Book, error)
	UpdateBook(ctx context.Context, id int64, req UpdateBookRequest) (*Book, error)
	DeleteBook(ctx context.Context, id int64) error
}
