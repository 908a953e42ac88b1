package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-lending/pkg/auth"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := auth.NewIssuer(auth.Config{Secret: "secret", TokenTTL: time.Hour})

	token, exp, err := iss.Issue("0b6f1a52-3c8e-4a43-8f70-3a1f0d1c2b11", "librarian")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "0b6f1a52-3c8e-4a43-8f70-3a1f0d1c2b11", claims.Profile.UserID)
	require.Equal(t, "librarian", claims.Profile.Role)
}

func TestIssuer_Parse(t *testing.T) {
	iss := auth.NewIssuer(auth.Config{Secret: "secret", TokenTTL: time.Hour})
	other := auth.NewIssuer(auth.Config{Secret: "other", TokenTTL: time.Hour})
	expired := auth.NewIssuer(auth.Config{Secret: "secret", TokenTTL: -time.Hour})

	foreign, _, err := other.Issue("u1", "member")
	require.NoError(t, err)
	stale, _, err := expired.Issue("u1", "member")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: auth.ErrInvalidToken},
		{name: "wrong key", token: foreign, wantErr: auth.ErrInvalidToken},
		{name: "expired", token: stale, wantErr: auth.ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Parse(tt.token)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthContext(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	require.False(t, ok)

	ctx := auth.SetAuthContext(context.Background(), "u1", "admin")
	id, ok := auth.FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, auth.Identity{UserID: "u1", Role: "admin"}, id)
}
