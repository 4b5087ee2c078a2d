package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{User, Moderator, Admin} {
		assert.Equal(t, r, FromString(r.String()))
	}
}

func TestFromStringUnknownDefaultsToUser(t *testing.T) {
	assert.Equal(t, User, FromString(""))
	assert.Equal(t, User, FromString("superadmin"))
}
