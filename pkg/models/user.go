package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash never leaves the service;
// the json:"-" tag keeps it out of every response body.
type User struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Role                 string    `json:"role"`
	Region               string    `json:"region"`
	IsTrustedContributor bool      `json:"is_trusted_contributor"`
	CreatedOn            time.Time `json:"created_on"`
}

// Role constants for system roles.
const (
	RoleConsultant        = "CONSULTANT"
	RoleKnowledgeChampion = "KNOWLEDGE_CHAMPION"
	RoleGovernanceCouncil = "GOVERNANCE_COUNCIL"
	RoleAdmin             = "ADMIN"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleConsultant, RoleKnowledgeChampion, RoleGovernanceCouncil, RoleAdmin}

// IsValidRole checks if the given role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Region constants.
const (
	RegionAfrica       = "AFRICA"
	RegionAsia         = "ASIA"
	RegionAustralia    = "AUSTRALIA"
	RegionEurope       = "EUROPE"
	RegionNorthAmerica = "NORTH_AMERICA"
	RegionSouthAmerica = "SOUTH_AMERICA"
)

// ValidRegions contains all valid region values.
var ValidRegions = []string{
	RegionAfrica, RegionAsia, RegionAustralia,
	RegionEurope, RegionNorthAmerica, RegionSouthAmerica,
}

// IsValidRegion checks if the given region is valid.
func IsValidRegion(region string) bool {
	for _, r := range ValidRegions {
		if r == region {
			return true
		}
	}
	return false
}
