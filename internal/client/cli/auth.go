package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

// Login asks for admin credentials, exchanges them for a bearer token and
// reloads the store with the new session.
func (a *App) Login(ctx context.Context, _ []string) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getSecret("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userName, string(password)); err != nil {
		return err
	}
	a.store.SetActor(userName)
	fmt.Fprintln(a.out, "Logged in as", userName)

	return a.Reload(ctx, nil)
}

// SetToken stores a bearer token obtained outside the console.
func (a *App) SetToken(ctx context.Context, _ []string) error {
	token, err := getSecret("Paste bearer token", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	actor, err := getSimpleText(a.reader, "Acting admin (empty for default)", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.SetToken(ctx, actor, string(token)); err != nil {
		return err
	}
	a.store.SetActor(actor)
	fmt.Fprintln(a.out, "Token saved")
	return nil
}

// Logout forgets the stored session. The audit actor falls back to the
// configured one.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.store.SetActor(a.config.ActorID)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Reload refreshes all collections (and token batches) from the backend, or
// re-reads local storage when offline.
func (a *App) Reload(ctx context.Context, _ []string) error {
	err := a.store.Reload(ctx)
	if tbErr := a.store.ReloadTokenBatches(ctx); tbErr != nil {
		a.log.Warn(ctx, "token batches not reloaded", "error", tbErr)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Loaded %d elections, %d candidates, %d voters (%s)\n",
		len(a.store.Elections()), len(a.store.Candidates()), len(a.store.Voters()), a.store.Status())
	return nil
}

func usage(u string) error {
	return errors.New("usage: " + u)
}
