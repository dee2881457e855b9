package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Employee permissions
	PermissionWithdrawalRead  = "withdrawal:read"
	PermissionWithdrawalWrite = "withdrawal:write"
	PermissionAdvisorChat     = "advisor:chat"
	PermissionChangePassword  = "user:change-password"

	// Employer permissions
	PermissionEmployerRead      = "employer:read"
	PermissionAttendanceWrite   = "attendance:write"
	PermissionVerificationWrite = "verification:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionWithdrawalRead,
			PermissionWithdrawalWrite,
			PermissionAdvisorChat,
			PermissionChangePassword,
			PermissionEmployerRead,
			PermissionAttendanceWrite,
			PermissionVerificationWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleEmployer:
		return []string{
			PermissionEmployerRead,
			PermissionAttendanceWrite,
			PermissionVerificationWrite,
			PermissionChangePassword,
		}
	case RoleEmployee:
		return []string{
			PermissionWithdrawalRead,
			PermissionWithdrawalWrite,
			PermissionAdvisorChat,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
