package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleSet_Has(t *testing.T) {
	s := NewRoleSet(RoleAdmin, RoleUser)

	assert.True(t, s.Has(RoleAdmin))
	assert.True(t, s.Has(RoleUser))
	assert.False(t, s.Has(RoleSuperAdmin))
	assert.False(t, s.Has(RoleDeliveryPartner))
}

func TestRoleSet_Empty(t *testing.T) {
	assert.True(t, NewRoleSet().IsEmpty())
	assert.False(t, NewRoleSet(RoleUser).IsEmpty())

	var nilSet RoleSet
	assert.True(t, nilSet.IsEmpty())
	assert.False(t, nilSet.Has(RoleUser))
}

func TestRoleSet_Clone(t *testing.T) {
	orig := NewRoleSet(RoleAdmin)
	cp := orig.Clone()
	cp[RoleUser] = struct{}{}

	assert.False(t, orig.Has(RoleUser))
	assert.True(t, cp.Has(RoleAdmin))
}

func TestRoleSet_Slice(t *testing.T) {
	s := NewRoleSet(RoleAdmin, RoleUser)
	roles := s.Slice()

	assert.Len(t, roles, 2)
	assert.ElementsMatch(t, []Role{RoleAdmin, RoleUser}, roles)
}

func TestSession_RoleSet(t *testing.T) {
	sess := Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Roles:     []Role{RoleAdmin, RoleUser},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	set := sess.RoleSet()
	assert.True(t, set.Has(RoleAdmin))
	assert.True(t, set.Has(RoleUser))
	assert.False(t, set.Has(RoleSuperAdmin))
}

func TestSession_RoleSet_Duplicates(t *testing.T) {
	sess := Session{Roles: []Role{RoleUser, RoleUser}}
	assert.Len(t, sess.RoleSet(), 1)
}
