package model

// UserRole decides which part of the product a user lands in after login.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// CardStatus tracks whether a company card has been issued to the user.
type CardStatus string

const (
	CardStatusNotIssued CardStatus = "NOT_ISSUED"
	CardStatusActive    CardStatus = "ACTIVE"
	CardStatusRevoked   CardStatus = "REVOKED"
)

// User is an employee profile managed by administrators.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       UserRole   `json:"role"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Phone      string     `json:"phone"`
	CardStatus CardStatus `json:"cardStatus"`
	AvatarURL  string     `json:"avatarUrl,omitempty"`
	IssuedAt   string     `json:"issuedAt,omitempty"`
}

// NewUserInput is the payload for creating a user profile.
type NewUserInput struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Role       UserRole `json:"role" validate:"required,oneof=ADMIN USER"`
	Position   string   `json:"position"`
	Department string   `json:"department"`
	Phone      string   `json:"phone"`
}

// SignupInput is the self-service registration payload. The password is
// required by the form but never stored.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput selects a user by email. Role is optional and, when given,
// must match the stored role.
type LoginInput struct {
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}
