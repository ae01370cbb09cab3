package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/produce-ledger/backend/internal/httperror"
)

var (
	ErrNoToken      = errors.New("you need to provide a bearer token in the Authorization header")
	ErrInvalidToken = errors.New("the bearer token is invalid or expired")
	ErrNoSecret     = errors.New("API_JWT_SECRET must be set to a non-empty value")
)

const sessionKey = "produce-ledger-session"

// Claims are the JWT claims issued for a user of the API.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
}

// Session identifies the authenticated user for the current request.
type Session struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
}

// Secret returns the signing secret from the environment.
func Secret() ([]byte, error) {
	secret := os.Getenv("API_JWT_SECRET")
	if secret == "" {
		return nil, ErrNoSecret
	}

	return []byte(secret), nil
}

// NewToken issues a signed token for the user. It is used by tests and by
// deployments that do not put an identity provider in front of the API.
func NewToken(secret []byte, session Session, validFor time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validFor)),
		},
		Email:     session.Email,
		FirstName: session.FirstName,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Middleware verifies the bearer token of the request and stores the
// session in the context. Requests without a valid token are rejected
// with 401.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrNoToken))
			return
		}

		claims := &Claims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrInvalidToken))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(ErrInvalidToken))
			return
		}

		c.Set(sessionKey, Session{
			UserID:    userID,
			Email:     claims.Email,
			FirstName: claims.FirstName,
		})

		c.Next()
	}
}

// SessionFromContext returns the session that the middleware stored for
// the request.
func SessionFromContext(c *gin.Context) (Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}

	session, ok := value.(Session)
	return session, ok
}
