package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleCoach.Valid())
	assert.True(t, RolePlayer.Valid())

	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Manager").Valid())
}
