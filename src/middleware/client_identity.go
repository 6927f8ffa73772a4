package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// ClientIDKey is the context key for the browser identity
	ClientIDKey = "client_id"

	// ClientCookieName holds the signed browser identity
	ClientCookieName = "portal_client"

	// ClientHeaderName lets non-browser shells present the same token
	ClientHeaderName = "X-Client-Token"

	clientTokenIssuer = "missing-persons-portal"
	clientTokenTTL    = 365 * 24 * time.Hour
)

// ClientClaims are the JWT claims of the browser identity cookie
type ClientClaims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// ClientIdentity issues and verifies browser identities
type ClientIdentity struct {
	secret []byte
	secure bool
}

// NewClientIdentity creates an issuer signing with secret.
// secure marks the cookie HTTPS-only.
func NewClientIdentity(secret string, secure bool) (*ClientIdentity, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	return &ClientIdentity{secret: []byte(secret), secure: secure}, nil
}

// GenerateToken signs a token for clientID
func (ci *ClientIdentity) GenerateToken(clientID string) (string, error) {
	claims := ClientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(clientTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    clientTokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ci.secret)
}

// ValidateToken verifies a token and returns its claims
func (ci *ClientIdentity) ValidateToken(tokenString string) (*ClientClaims, error) {
	claims := &ClientClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ci.secret, nil
	}, jwt.WithIssuer(clientTokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.ClientID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware attaches the browser identity to the request. A missing or
// invalid token is replaced by a fresh identity, like a browser whose local
// storage was cleared.
func (ci *ClientIdentity) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(ClientHeaderName)
		if tokenString == "" {
			tokenString, _ = c.Cookie(ClientCookieName)
		}

		if tokenString != "" {
			if claims, err := ci.ValidateToken(tokenString); err == nil {
				c.Set(ClientIDKey, claims.ClientID)
				c.Next()
				return
			}
		}

		clientID := uuid.New().String()
		token, err := ci.GenerateToken(clientID)
		if err != nil {
			log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("failed to issue client token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to issue client identity"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientCookieName, token, int(clientTokenTTL.Seconds()), "/", "", ci.secure, true)
		c.Header(ClientHeaderName, token)
		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// GetClientID retrieves the browser identity from context
func GetClientID(c *gin.Context) string {
	if id, exists := c.Get(ClientIDKey); exists {
		return id.(string)
	}
	return ""
}
