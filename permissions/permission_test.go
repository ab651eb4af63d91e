package permissions_test

import (
	"net/http"
	"testing"

	"guesthouse/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	seen := map[string]bool{}

	for _, endpoint := range data.Endpoints {
		assert.Contains(t, methods, endpoint.Method, endpoint.Path)

		id := endpoint.Method + " " + endpoint.Path
		assert.False(t, seen[id], "duplicate endpoint %s", id)
		seen[id] = true

		if !endpoint.Skip {
			assert.NotEmpty(t, endpoint.Permissions, "private endpoint %s lists no roles", id)
		}
	}
}

func TestFindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/rooms","method":"GET","permissions":[],"skip":true},
		{"path":"/v1/rooms","method":"POST","permissions":["admin"]},
		{"path":"/v1/rooms/{id}","method":"DELETE","permissions":["superadmin","admin"]}
	]}`))
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "public list", path: "/v1/rooms", method: http.MethodGet, wantSkip: true, wantRoles: []string{}},
		{name: "trailing slash", path: "/v1/rooms/", method: http.MethodPost, wantRoles: []string{"admin"}},
		{name: "pattern", path: "/v1/rooms/{id}", method: http.MethodDelete, wantRoles: []string{"superadmin", "admin"}},
		{name: "lower case method", path: "/v1/rooms/{id}", method: "delete", wantRoles: []string{"superadmin", "admin"}},
		{name: "unknown", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":`))
	assert.Error(t, err)
}
