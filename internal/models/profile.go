package models

import "time"

// ProfileRole is the privilege level stored on a profile.
type ProfileRole string

const (
	RoleNormal ProfileRole = "Normal"
	RoleAdmin  ProfileRole = "Administrador"
)

// Profile describes a professional using the tracker.
type Profile struct {
	ID        string      `db:"id" json:"id"`
	Username  string      `db:"username" json:"username"`
	Unit      *string     `db:"unidade" json:"unit,omitempty"`
	Team      *string     `db:"equipe" json:"team,omitempty"`
	MicroArea *string     `db:"microarea" json:"micro_area,omitempty"`
	Role      ProfileRole `db:"role" json:"role"`
	UpdatedAt *time.Time  `db:"updated_at" json:"updated_at,omitempty"`
	FullName  string      `db:"-" json:"full_name,omitempty"`
	AvatarURL string      `db:"-" json:"avatar_url,omitempty"`
}

// IsAdmin reports whether the profile carries administrative privileges.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
