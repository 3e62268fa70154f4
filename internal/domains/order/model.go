package order

import "time"

// StatusInProgress là status mặc định, không có transition nào khác
const StatusInProgress = "in progress"

// Giá trị thay thế khi không enrich được
const (
	UnknownUser = "unknown user"
	UnknownBook = "unknown book"
)

// Order - record lưu trong database của order service.
// UserID/BookID là tham chiếu sang service khác, không có foreign key.
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	BookID    int64     `json:"bookId"`
	OrderDate time.Time `json:"orderDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnrichedOrder - Order kèm tên user và tiêu đề sách lấy từ peer services
type EnrichedOrder struct {
	Order
	UserName  string `json:"userName"`
	BookTitle string `json:"bookTitle"`
}
