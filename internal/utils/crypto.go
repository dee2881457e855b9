package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against a plaintext candidate.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateInviteCode produces an employer invite code of the form
// EMP-XXXXXXXX. Codes are unique per employer; collisions are caught by
// the unique index on employers.invite_code.
func GenerateInviteCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "EMP-" + raw[:8]
}

// GenerateTempPassword produces the temporary password issued to a
// newly accepted employer account. The employer is expected to change
// it on first login.
func GenerateTempPassword() string {
	raw := uuid.New().String()
	return "SS@" + raw[:8]
}
