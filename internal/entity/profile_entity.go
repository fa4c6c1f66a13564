package entity

import "time"

type ProfileRole string

const (
	RoleStudent   ProfileRole = "student"
	RoleProfessor ProfileRole = "professor"
	RoleAdmin     ProfileRole = "admin"
)

// Profile is a student or professor account targeted by notifications.
// Identity itself (credentials, login) lives in the external auth provider;
// this record only carries what the marketplace needs.
type Profile struct {
	Id        int64
	Name      string
	Email     string
	Role      ProfileRole
	CreatedAt time.Time
	UpdatedAt *time.Time
}
