package session

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/set-night/travelhub/internal/domain"
)

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeClaims reads role and companyId from the payload segment of a bearer
// token without verifying it. Any malformed input yields empty claims.
func DecodeClaims(token string) domain.SessionClaims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return domain.SessionClaims{}
	}
	raw, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return domain.SessionClaims{}
	}
	var payload struct {
		Role      string        `json:"role"`
		CompanyID domain.FlexID `json:"companyId"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.SessionClaims{}
	}
	return domain.SessionClaims{
		Role:      domain.ParseRole(payload.Role),
		CompanyID: string(payload.CompanyID),
	}
}

// NormalizeUser merges identity sources with precedence server field, then
// token claim, then the previously known value.
func NormalizeUser(server *domain.AuthUser, claims domain.SessionClaims, prev *domain.AuthUser) *domain.AuthUser {
	if server == nil {
		return nil
	}
	u := *server
	u.Role = domain.ParseRole(string(u.Role))
	if u.Role == "" {
		u.Role = claims.Role
	}
	if u.CompanyID == "" {
		u.CompanyID = domain.FlexID(claims.CompanyID)
	}
	if prev != nil {
		if u.Role == "" {
			u.Role = prev.Role
		}
		if u.CompanyID == "" {
			u.CompanyID = prev.CompanyID
		}
	}
	return &u
}
