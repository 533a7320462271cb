package services

import (
	"context"

	"github.com/dmitrijs2005/studyplanner/internal/client/client"
	"github.com/dmitrijs2005/studyplanner/internal/client/repositories/metadata"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserName     = "username"
)

// Session keeps the login state in the local metadata store.
type Session struct {
	repo metadata.Repository
}

var _ client.TokenStore = (*Session)(nil)

func NewSession(repo metadata.Repository) *Session {
	return &Session{repo: repo}
}

func (s *Session) Tokens(ctx context.Context) (string, string, error) {
	access, err := s.repo.Get(ctx, keyAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Session) SaveTokens(ctx context.Context, access, refresh string) error {
	return s.repo.SetMany(ctx, map[string]string{
		keyAccessToken:  access,
		keyRefreshToken: refresh,
	})
}

// UserName returns "" when nobody is logged in.
func (s *Session) UserName(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, keyUserName)
}

func (s *Session) start(ctx context.Context, userName, access, refresh string) error {
	return s.repo.SetMany(ctx, map[string]string{
		keyUserName:     userName,
		keyAccessToken:  access,
		keyRefreshToken: refresh,
	})
}

func (s *Session) clear(ctx context.Context) error {
	return s.repo.Delete(ctx, keyUserName, keyAccessToken, keyRefreshToken)
}
