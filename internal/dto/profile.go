package dto

import "github.com/noah-isme/careplan-api/internal/models"

// ChangeRoleRequest carries the administrative code that selects a privilege level.
type ChangeRoleRequest struct {
	Code string `json:"code" validate:"required"`
}

// ChangeRoleResponse reports the privilege level now in force.
type ChangeRoleResponse struct {
	Role models.ProfileRole `json:"role"`
}
