package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

type Config struct {
	Secret   string        `envconfig:"JWT_SECRET" default:"local_dev_secret"`
	TokenTTL time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type Claims struct {
	Profile struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	} `json:"profile"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{
		key: []byte(cfg.Secret),
		ttl: cfg.TokenTTL,
		now: time.Now,
	}
}

// Issue signs an HS256 token for the user and returns it with its expiration time.
func (i *Issuer) Issue(userID, role string) (string, time.Time, error) {
	expiresAt := i.now().Add(i.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(i.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	claims.Profile.UserID = userID
	claims.Profile.Role = role

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "SignedString")
	}
	return token, expiresAt, nil
}

func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.key, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Profile.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type authKey struct{}

type Identity struct {
	UserID string
	Role   string
}

func SetAuthContext(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, authKey{}, Identity{UserID: userID, Role: role})
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(authKey{}).(Identity)
	return id, ok
}
