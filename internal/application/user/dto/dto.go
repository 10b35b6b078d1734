package dto

import (
	"time"

	"github.com/fixdesk/fixdesk/internal/domain/user"
)

// UserDTO is the public view of an account. It never carries the password hash.
type UserDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ToUserDTO converts a domain user, including its creation time
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	createdAt := u.CreatedAt()
	return &UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		CreatedAt: &createdAt,
	}
}

// ToUserSummary is the {id,name,email,role} shape returned by login and the role listing
func ToUserSummary(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
		Role:  u.Role().String(),
	}
}

func ToUserSummaries(users []*user.User) []*UserDTO {
	result := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserSummary(u))
	}
	return result
}
