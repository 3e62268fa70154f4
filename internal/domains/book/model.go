package book

import "time"

// Book là entity của catalog service - ánh xạ 1:1 với bảng books
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year"` // optional, null khi không có

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CacheKey: "book:{id}"
func CacheKey(id int64) string {
	return "book:" + itoa(id)
}
