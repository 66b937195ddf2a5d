package models

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   EndpointClass
	}{
		{http.MethodGet, "/api/v1/claims/pending", ClassRead},
		{http.MethodPost, "/api/v1/claims", ClassWorkflow},
		{http.MethodDelete, "/api/v1/claims/abc", ClassWorkflow},
		{http.MethodPost, "/api/v1/invitations/process", ClassWorkflow},
		{http.MethodPatch, "/api/v1/families/f/members/m", ClassWrite},
		{http.MethodPost, "/api/v1/notifications/read-all", ClassWrite},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(httptest.NewRequest(tt.method, tt.path, nil)))
		})
	}
}

func TestUserKeyEscapesDelimiter(t *testing.T) {
	assert.Equal(t, "user:a_b:write", UserKey("a:b", ClassWrite))
}
