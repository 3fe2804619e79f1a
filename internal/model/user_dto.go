package model

import "github.com/google/uuid"

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Enabled   bool      `json:"enabled"`
	CreatedAt string    `json:"createdAt,omitempty"`
}

type UserUpsertRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,max=120"`
	Role     string `json:"role" validate:"required,oneof=admin staff practitioner"`
	Enabled  bool   `json:"enabled"`
}

type UserFilter struct {
	Role    string   `query:"role"`
	Enabled *bool    `query:"enabled"`
	RoleIn  []string `query:"roleIn"`
}
