// Package services contains the CLI application services: session
// handling, authentication and the study planner calls.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studyplanner/internal/client/client"
	"github.com/dmitrijs2005/studyplanner/internal/client/models"
	"github.com/dmitrijs2005/studyplanner/internal/common"
)

// ErrNotLoggedIn is returned by commands that need a session.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService registers users and manages the local session.
type AuthService struct {
	api     client.Client
	session *Session
}

func NewAuthService(api client.Client, session *Session) *AuthService {
	return &AuthService{api: api, session: session}
}

// Ping checks that the server is reachable.
func (a *AuthService) Ping(ctx context.Context) error {
	return a.api.Health(ctx)
}

func (a *AuthService) Register(ctx context.Context, r models.Registration, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)
	r.Password = string(password)
	return a.api.Register(ctx, r)
}

// Login authenticates and stores the token pair. The password buffer is
// wiped before returning.
func (a *AuthService) Login(ctx context.Context, userName string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	pair, err := a.api.Login(ctx, userName, string(password))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user := pair.User
	if user == nil {
		user = &models.User{UserName: userName}
	}
	if err := a.session.start(ctx, user.UserName, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Logout revokes the refresh token on the server and clears the local
// session. The local session is cleared even when the server call fails.
func (a *AuthService) Logout(ctx context.Context) error {
	_, refresh, err := a.session.Tokens(ctx)
	if err != nil {
		return err
	}
	if refresh == "" {
		return ErrNotLoggedIn
	}

	serverErr := a.api.Logout(ctx, refresh)
	if err := a.session.clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if serverErr != nil && !errors.Is(serverErr, client.ErrUnauthorized) {
		return fmt.Errorf("server logout: %w", serverErr)
	}
	return nil
}

func (a *AuthService) Me(ctx context.Context) (*models.User, error) {
	if err := a.requireSession(ctx); err != nil {
		return nil, err
	}
	return a.api.Me(ctx)
}

// CurrentUser returns the locally remembered user name.
func (a *AuthService) CurrentUser(ctx context.Context) (string, error) {
	return a.session.UserName(ctx)
}

func (a *AuthService) requireSession(ctx context.Context) error {
	access, refresh, err := a.session.Tokens(ctx)
	if err != nil {
		return err
	}
	if access == "" && refresh == "" {
		return ErrNotLoggedIn
	}
	return nil
}
