package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCompany  Role = "COMPANY"
	RoleTraveler Role = "TRAVELER"
)

// ParseRole accepts any casing; unknown values yield "".
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleCompany:
		return RoleCompany
	case RoleTraveler:
		return RoleTraveler
	}
	return ""
}

// FlexID decodes identifiers the backend sends either as strings or numbers.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// AuthUser is the signed-in identity as merged from the server response and token claims.
type AuthUser struct {
	ID        FlexID `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Role      Role   `json:"role,omitempty"`
	CompanyID FlexID `json:"companyId,omitempty"`
}

func (u *AuthUser) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	case u.Mobile != "":
		return u.Mobile
	}
	return "Current User"
}

// SessionClaims are the authorization fields carried in a bearer token payload.
type SessionClaims struct {
	Role      Role
	CompanyID string
}
