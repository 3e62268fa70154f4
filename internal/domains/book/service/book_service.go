package service

import (
	"context"
	"errors"
	"fmt"

	"bookstore-microservices/internal/domains/book"
	"bookstore-microservices/pkg/logger"
)

// bookService implement book.Service
type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) ListBooks(ctx context.Context) ([]book.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		logger.ErrorFields("list books failed", err, map[string]interface{}{"op": "ListBooks"})
		return nil, err
	}
	return books, nil
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*book.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logFailure("GetBook", id, err)
		return nil, err
	}
	return b, nil
}

func (s *bookService) CreateBook(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", book.ErrInvalidInput, err)
	}

	// 2. PERSIST
	b := &book.Book{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		logger.ErrorFields("create book failed", err, map[string]interface{}{
			"op":    "CreateBook",
			"title": req.Title,
		})
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{"book_id": b.ID})
	return b, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id int64, req book.UpdateBookRequest) (*book.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		if errors.Is(err, book.ErrNoFieldsToUpdate) {
			return nil, fmt.Errorf("%w: %w", book.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", book.ErrInvalidInput, err)
	}

	b, err := s.repo.Update(ctx, id, req)
	if err != nil {
		s.logFailure("UpdateBook", id, err)
		return nil, err
	}
	return b, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logFailure("DeleteBook", id, err)
		return err
	}

	logger.Info("book deleted", map[string]interface{}{"book_id": id})
	return nil
}

// not found chỉ là warn, còn lại là lỗi datastore
func (s *bookService) logFailure(op string, id int64, err error) {
	fields := map[string]interface{}{"op": op, "book_id": id}
	if errors.Is(err, book.ErrBookNotFound) {
		fields["error"] = err.Error()
		logger.Warn("book not found", fields)
		return
	}
	logger.ErrorFields("book datastore error", err, fields)
}
