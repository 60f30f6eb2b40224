package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/pkg/webcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/nomadcrew/nomad-backend/contributors", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"login":"alice","html_url":"https://github.com/alice","avatar_url":"https://avatars.test/alice","contributions":42},
			{"login":"bob","html_url":"https://github.com/bob","avatar_url":"https://avatars.test/bob","contributions":7}
		]`))
	}))
	defer server.Close()

	svc := NewGithubService(webcache.NewClient(), server.URL)

	contributors, err := svc.Contributors("nomadcrew", "nomad-backend")
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	assert.Equal(t, "alice", contributors[0].Username)
	assert.Equal(t, 42, contributors[0].Contributions)
	assert.Equal(t, "nomad-backend", contributors[0].RepositoryName)
}

func TestContributorsUpstreamFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewGithubService(webcache.NewClient(), server.URL)

	_, err := svc.Contributors("nomadcrew", "nomad-backend")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnavailable))
	assert.Equal(t, "Authentication fails. Invalid github access token.", apperr.Message(err))
}
