package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
)

type ContributorResponse struct {
	Username       string `json:"username"`
	URL            string `json:"url"`
	AvatarURL      string `json:"avatar_url"`
	Contributions  int    `json:"contributions"`
	RepositoryName string `json:"repository_name"`
}

type GithubService struct {
	httpClient *http.Client
	apiBase    string
}

func NewGithubService(httpClient *http.Client, apiBase string) *GithubService {
	return &GithubService{
		httpClient: httpClient,
		apiBase:    apiBase,
	}
}

// Contributors proxies the GitHub contributors listing for owner/repo.
// Responses come through the caching client, so repeat lookups within the
// cache window don't hit GitHub.
func (s *GithubService) Contributors(owner, repo string) ([]ContributorResponse, error) {
	requestURL := fmt.Sprintf("%s/repos/%s/%s/contributors", s.apiBase, owner, repo)
	resp, err := s.httpClient.Get(requestURL)
	if err != nil {
		return nil, apperr.Unavailable("github request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperr.Unavailable("Authentication fails. Invalid github access token.", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Unavailable(fmt.Sprintf("github responded with %d", resp.StatusCode), nil)
	}

	var contributors []struct {
		Login         string `json:"login"`
		HTMLURL       string `json:"html_url"`
		AvatarURL     string `json:"avatar_url"`
		Contributions int    `json:"contributions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&contributors); err != nil {
		return nil, apperr.Unavailable("github response malformed", err)
	}

	response := make([]ContributorResponse, 0, len(contributors))
	for _, contributor := range contributors {
		response = append(response, ContributorResponse{
			Username:       contributor.Login,
			URL:            contributor.HTMLURL,
			AvatarURL:      contributor.AvatarURL,
			Contributions:  contributor.Contributions,
			RepositoryName: repo,
		})
	}
	return response, nil
}
