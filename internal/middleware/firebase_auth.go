package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/repositories"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthenticator verifies Firebase ID tokens and maps the Firebase
// UID to a local user, creating the user on first sign-in.
type FirebaseAuthenticator struct {
	verifier idTokenVerifier
	users    repositories.UserRepository
}

func NewFirebaseAuthenticator(verifier idTokenVerifier, users repositories.UserRepository) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier, users: users}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, idToken string) (string, error) {
	token, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := a.users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return user.ID, nil
	}
	if !repositories.IsNotFound(err) {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	uid := token.UID
	user, err = a.users.EnsureFirebaseUser(ctx, &models.User{
		Name:        claimString(token.Claims, "name"),
		Email:       claimString(token.Claims, "email"),
		Image:       claimString(token.Claims, "picture"),
		FirebaseUID: &uid,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
