package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studyplanner/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	var err error

	if r.UserName, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if r.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	if r.LearningStyle, err = getSimpleText(a.reader, "Learning style (optional)", a.out); err != nil {
		return err
	}
	if r.KnowledgeLevel, err = getSimpleText(a.reader, "Knowledge level: beginner, intermediate or advanced (optional)", a.out); err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, r, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s. You can log in now.\n", u.UserName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		return err
	}
	a.userName = u.UserName
	fmt.Fprintf(a.out, "Logged in as %s\n", u.UserName)
	return nil
}

// Logout forgets the local session even if the server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.userName = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	renderUser(a.out, u)
	return nil
}
