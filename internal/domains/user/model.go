package user

import "time"

// User là domain entity - ánh xạ 1:1 với bảng users
type User struct {
	ID    int64
	Email string

	// Authentication - chỉ lưu digest, không bao giờ lưu plaintext
	PasswordHash string

	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserDTO - Public user representation (không có password)
type UserDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToDTO converts User entity to UserDTO
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
