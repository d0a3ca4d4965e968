package firebase

import (
	"context"
	"fmt"

	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// AdminClaim is the custom claim that grants access to the catalog admin API.
const AdminClaim = "admin"

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirebaseAuthClient, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase Auth: %w", err)
	}

	return &FirebaseAuthClient{client: client}, nil
}

func (f *FirebaseAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return f.client.VerifyIDToken(ctx, idToken)
}

// SetAdmin grants or revokes the admin claim. It takes effect the next time
// the user's ID token is refreshed.
func (f *FirebaseAuthClient) SetAdmin(ctx context.Context, uid string, admin bool) error {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	claims := make(map[string]interface{}, len(user.CustomClaims)+1)
	for k, v := range user.CustomClaims {
		claims[k] = v
	}
	if admin {
		claims[AdminClaim] = true
	} else {
		delete(claims, AdminClaim)
	}

	return f.client.SetCustomUserClaims(ctx, uid, claims)
}

// IsAdmin reports whether verified token claims carry the admin claim.
func IsAdmin(claims map[string]interface{}) bool {
	admin, ok := claims[AdminClaim].(bool)
	return ok && admin
}
