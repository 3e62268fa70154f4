package order

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateOrderRequest - POST /commandes
// Pointer để phân biệt field thiếu với giá trị 0
type CreateOrderRequest struct {
	UserID *int64 `json:"userId"`
	BookID *int64 `json:"bookId"`
}

func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID,
			validation.NotNil.Error("userId is required"),
			validation.Required.Error("userId must be a positive integer"),
			validation.Min(int64(1)).Error("userId must be a positive integer"),
		),
		validation.Field(&r.BookID,
			validation.NotNil.Error("bookId is required"),
			validation.Required.Error("bookId must be a positive integer"),
			validation.Min(int64(1)).Error("bookId must be a positive integer"),
		),
	)
}
