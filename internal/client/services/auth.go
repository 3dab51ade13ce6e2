// Package services contains application services for the console client.
// This file defines the authentication service: it keeps the bearer
// credential in local metadata, obtains one from the backend on request and
// probes backend liveness.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/client"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ballotkeeper/internal/dbx"
)

// AuthService manages the console session.
//
// Contract:
//   - Login: exchange admin credentials for a bearer token and remember it
//     together with the acting admin's name.
//   - SetToken: store a token obtained elsewhere.
//   - Token: the current token ("" when logged out); satisfies client.TokenSource.
//   - Logout: forget the session.
//   - Ping: check backend liveness.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	SetToken(ctx context.Context, actor, token string) error
	Token(ctx context.Context) (string, error)
	Actor(ctx context.Context) (string, error)
	IsAuthenticated(ctx context.Context) bool
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is backed by the backend client and the local metadata table.
// client may be nil in offline mode, in which case Login and Ping report
// client.ErrUnavailable.
type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Login authenticates against the backend and saves the issued token.
func (a *authService) Login(ctx context.Context, username, password string) error {
	if a.client == nil {
		return client.ErrUnavailable
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", client.ErrUnauthorized)
	}

	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.SetToken(ctx, username, token); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

// SetToken stores token and actor in one transaction.
func (a *authService) SetToken(ctx context.Context, actor, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := metadata.SetString(ctx, repo, metadata.KeyAuthToken, token); err != nil {
			return err
		}
		if actor = strings.TrimSpace(actor); actor != "" {
			if err := metadata.SetString(ctx, repo, metadata.KeyActorID, actor); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) Token(ctx context.Context) (string, error) {
	return metadata.GetString(ctx, a.getMetadataRepo(a.db), metadata.KeyAuthToken)
}

func (a *authService) Actor(ctx context.Context) (string, error) {
	return metadata.GetString(ctx, a.getMetadataRepo(a.db), metadata.KeyActorID)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	t, err := a.Token(ctx)
	return err == nil && t != ""
}

// Logout removes the stored token and actor.
func (a *authService) Logout(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Delete(ctx, metadata.KeyAuthToken); err != nil {
			return err
		}
		return repo.Delete(ctx, metadata.KeyActorID)
	})
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	if a.client == nil {
		return client.ErrUnavailable
	}
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}
