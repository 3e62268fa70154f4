package peer

import (
	"context"
	"strconv"
	"time"

	"bookstore-microservices/pkg/metrics"
)

// Book là phần của catalog record mà order service cần
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type CatalogClient struct {
	*Client
}

func NewCatalogClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *CatalogClient {
	return &CatalogClient{Client: newClient("catalog", baseURL, timeout, m)}
}

// GetBook gọi GET /livres/{id}
func (cc *CatalogClient) GetBook(ctx context.Context, id int64) (*Book, error) {
	var b Book
	if err := cc.getJSON(ctx, "/livres/"+strconv.FormatInt(id, 10), &b); err != nil {
		return nil, err
	}
	return &b, nil
}
