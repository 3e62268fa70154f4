package book

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest - POST /livres
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year,omitempty"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 500),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.Year, yearRules()...),
	)
}

// UpdateBookRequest - PUT /livres/:id
// Partial update: chỉ field nào được gửi (non-nil) mới được áp dụng
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Year   *int    `json:"year,omitempty"`
}

func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Author != nil {
		a := strings.TrimSpace(*r.Author)
		r.Author = &a
	}
}

// IsEmpty = không có field nào để cập nhật
func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Author == nil && r.Year == nil
}

func (r UpdateBookRequest) Validate() error {
	if r.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.RuneLength(1, 500),
		),
		validation.Field(&r.Author,
			validation.NilOrNotEmpty.Error("author cannot be empty"),
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.Year, yearRules()...),
	)
}

// year hợp lệ: 0 .. năm hiện tại + 1 (sách sắp phát hành)
func yearRules() []validation.Rule {
	return []validation.Rule{
		validation.Min(0).Error("year must not be negative"),
		validation.Max(time.Now().Year() + 1).Error("year is too far in the future"),
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
