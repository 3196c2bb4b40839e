package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleGroupAdmin   Role = "GROUP_ADMIN"
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	RoleFinanceAdmin Role = "FINANCE_ADMIN"
	RoleCreator      Role = "CREATOR"
	RoleCustomer     Role = "CUSTOMER"
	RoleStaff        Role = "STAFF"
)

// Valid reports whether r is one of the six role codes
func (r Role) Valid() bool {
	switch r {
	case RoleGroupAdmin, RoleCompanyAdmin, RoleFinanceAdmin, RoleCreator, RoleCustomer, RoleStaff:
		return true
	}
	return false
}

// AdminClass reports membership in the admin role-class
func (r Role) AdminClass() bool {
	return r == RoleCompanyAdmin || r == RoleGroupAdmin
}

// FinanceClass reports membership in the finance role-class
func (r Role) FinanceClass() bool {
	return r == RoleFinanceAdmin || r == RoleCompanyAdmin
}

// SelfServiceRoles are the roles a new member may pick at registration.
var SelfServiceRoles = []Role{RoleCreator, RoleCustomer, RoleFinanceAdmin}

type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
	MemberStatusBanned    MemberStatus = "BANNED"
)

// StatusFilterAll matches every status in registry filtering.
const StatusFilterAll = "ALL"

type AssetType string

const (
	AssetTypeIP         AssetType = "IP"
	AssetTypeContract   AssetType = "CONTRACT"
	AssetTypeDigitalArt AssetType = "DIGITAL_ART"
	AssetTypeEquity     AssetType = "EQUITY"
)

type OwnershipAsset struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          AssetType `json:"type"`
	ValueEstimate string    `json:"value_estimate"`
}

type Member struct {
	ID                 string           `json:"id"`
	Email              string           `json:"email"`
	Phone              string           `json:"phone"`
	Status             MemberStatus     `json:"status"`
	MFAEnabled         bool             `json:"mfa_enabled"`
	Role               Role             `json:"role"`
	CreatedAt          time.Time        `json:"created_at"`
	Bio                string           `json:"bio,omitempty"`
	OwnershipManifesto string           `json:"ownership_manifesto,omitempty"`
	CreativeScore      *int             `json:"creative_score,omitempty"`
	Points             int              `json:"points"`
	Assets             []OwnershipAsset `json:"assets,omitempty"`
	PasswordHash       string           `json:"-"`
}

// DisplayName is the local part of the member's email.
func (m *Member) DisplayName() string {
	name, _, _ := strings.Cut(m.Email, "@")
	return name
}

// Clone returns a deep copy safe to hand outside the owning session.
func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	c := *m
	if m.CreativeScore != nil {
		score := *m.CreativeScore
		c.CreativeScore = &score
	}
	if m.Assets != nil {
		c.Assets = append([]OwnershipAsset(nil), m.Assets...)
	}
	return &c
}
