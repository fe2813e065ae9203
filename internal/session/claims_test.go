package session

import (
	"testing"

	"github.com/set-night/travelhub/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDecodeClaims(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  domain.SessionClaims
	}{
		{"valid", tokenWith(`{"role":"ADMIN","companyId":"c-1"}`), domain.SessionClaims{Role: domain.RoleAdmin, CompanyID: "c-1"}},
		{"numeric company", tokenWith(`{"companyId":12}`), domain.SessionClaims{CompanyID: "12"}},
		{"empty", "", domain.SessionClaims{}},
		{"single segment", "abc", domain.SessionClaims{}},
		{"bad base64", "a.%%%.c", domain.SessionClaims{}},
		{"not json", "a." + "bm90IGpzb24" + ".c", domain.SessionClaims{}},
		{"json array", tokenWith(`[1,2]`), domain.SessionClaims{}},
		{"wrong types", tokenWith(`{"role":{"x":1},"companyId":true}`), domain.SessionClaims{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, DecodeClaims(tt.token))
			})
		})
	}
}

func TestNormalizeUser_Precedence(t *testing.T) {
	claims := domain.SessionClaims{Role: domain.RoleCompany, CompanyID: "from-token"}
	prev := &domain.AuthUser{Role: domain.RoleAdmin, CompanyID: "from-prev"}

	server := &domain.AuthUser{ID: "1", Role: "traveler", CompanyID: "from-server"}
	got := NormalizeUser(server, claims, prev)
	assert.Equal(t, domain.RoleTraveler, got.Role)
	assert.Equal(t, domain.FlexID("from-server"), got.CompanyID)

	got = NormalizeUser(&domain.AuthUser{ID: "1"}, claims, prev)
	assert.Equal(t, domain.RoleCompany, got.Role)
	assert.Equal(t, domain.FlexID("from-token"), got.CompanyID)

	got = NormalizeUser(&domain.AuthUser{ID: "1"}, domain.SessionClaims{}, prev)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, domain.FlexID("from-prev"), got.CompanyID)

	assert.Nil(t, NormalizeUser(nil, claims, prev))
}
