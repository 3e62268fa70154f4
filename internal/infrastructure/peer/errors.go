package peer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: peer trả 404 cho resource được hỏi
	ErrNotFound = errors.New("peer resource not found")

	// ErrUnavailable: timeout, lỗi kết nối, status bất thường hoặc body không đọc được
	ErrUnavailable = errors.New("peer service unavailable")
)

// Error giữ lại nguyên nhân cụ thể để log, luôn match ErrUnavailable qua errors.Is
type Error struct {
	Peer       string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Peer, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Peer, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}
