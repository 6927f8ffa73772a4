package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewAdminSession("admin"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"admin","isAdmin":true}`, string(data))

	data, err = json.Marshal(NewUserSession("alice"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"alice","isLoggedIn":true}`, string(data))
}

func TestSession_Role(t *testing.T) {
	assert.Equal(t, RoleAdmin, NewAdminSession("a").Role())
	assert.Equal(t, RoleUser, NewUserSession("u").Role())
}

func TestReportUpdate_IsEmpty(t *testing.T) {
	assert.True(t, ReportUpdate{}.IsEmpty())
	name := "John"
	assert.False(t, ReportUpdate{Name: &name}.IsEmpty())
}
