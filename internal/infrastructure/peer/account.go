package peer

import (
	"context"
	"strconv"
	"time"

	"bookstore-microservices/pkg/metrics"
)

// User là phần của account record mà order service cần
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AccountClient struct {
	*Client
}

func NewAccountClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *AccountClient {
	return &AccountClient{Client: newClient("account", baseURL, timeout, m)}
}

// GetUser gọi GET /users/{id}
func (a *AccountClient) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := a.getJSON(ctx, "/users/"+strconv.FormatInt(id, 10), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
