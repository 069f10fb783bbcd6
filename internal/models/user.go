package models

import "time"

// Role is the single workflow role carried by a subject. Exactly one per
// user, drawn from a closed set.
type Role string

const (
	RoleRequester Role = "requester"
	RoleReviewer  Role = "reviewer"
	RoleApprover  Role = "approver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleRequester, RoleReviewer, RoleApprover:
		return true
	}
	return false
}

// Subject is the authenticated actor for one request. Never persisted;
// derived from the token claims on every call.
type Subject struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) Subject() Subject {
	return Subject{ID: u.ID, Role: u.Role}
}
