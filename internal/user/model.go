package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrPasswordTooLong    = apperror.New(http.StatusBadRequest, "password is too long")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
)

type Role string

const (
	RoleSuperAdmin          Role = "super_admin"
	RoleManager             Role = "manager"
	RoleAccountant          Role = "accountant"
	RoleFrontDesk           Role = "front_desk"
	RoleHousekeepingManager Role = "housekeeping_manager"
	RoleStaff               Role = "staff"
	RoleCustomer            Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleAccountant, RoleFrontDesk, RoleHousekeepingManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to a hotel employee account.
func (r Role) IsStaff() bool {
	return r.Valid() && r != RoleCustomer
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Role     Role
	Email    string
	IsActive *bool // Use pointer to distinguish between false and nil (not set)

	Page  int
	Limit int
}
