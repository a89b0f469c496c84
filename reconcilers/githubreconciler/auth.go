/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Auth selects how requests to GitHub are authenticated. Token takes
// precedence over the App installation fields.
type Auth struct {
	Token string

	AppID          int64
	InstallationID int64
	PrivateKey     []byte
}

// Transport wraps base with the configured credentials.
func (a Auth) Transport(base http.RoundTripper) (http.RoundTripper, error) {
	if base == nil {
		base = http.DefaultTransport
	}
	switch {
	case a.Token != "":
		return &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: a.Token})),
			Base:   base,
		}, nil

	case a.AppID != 0:
		if a.InstallationID == 0 || len(a.PrivateKey) == 0 {
			return nil, errors.New("GitHub App auth needs an installation ID and a private key")
		}
		tr, err := ghinstallation.New(base, a.AppID, a.InstallationID, a.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("creating installation transport: %w", err)
		}
		return tr, nil

	default:
		return nil, errors.New("no GitHub credentials configured")
	}
}

// NewClients builds the REST and GraphQL clients for the given endpoints.
// Empty URLs select github.com.
func NewClients(httpClient *http.Client, apiURL, graphqlURL string) (*github.Client, *githubv4.Client, error) {
	gh := github.NewClient(httpClient)
	if apiURL != "" {
		u, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, nil, fmt.Errorf("parsing api url: %w", err)
		}
		gh.BaseURL = u
	}

	gql := githubv4.NewClient(httpClient)
	if graphqlURL != "" {
		gql = githubv4.NewEnterpriseClient(graphqlURL, httpClient)
	}
	return gh, gql, nil
}
