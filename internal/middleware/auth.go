package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// RolesClaim is the namespaced custom claim carrying the dashboard roles.
const RolesClaim = "https://atalaya.app/roles"

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"https://atalaya.app/roles"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// Role returns the dashboard role for the token. Unknown or missing role
// claims fall back to the restricted "user" role, never to admin.
func (c CustomClaims) Role() string {
	for _, r := range c.Roles {
		if r == domain.RoleAdmin {
			return domain.RoleAdmin
		}
	}
	return domain.RoleUser
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// SubjectKey is the context key for the token subject
	SubjectKey contextKey = "subject"
	// RoleKey is the context key for the resolved dashboard role
	RoleKey contextKey = "role"
)

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	validator *validator.Validator
}

// NewAuthMiddleware creates a new AuthMiddleware with Auth0 configuration
func NewAuthMiddleware(domainName, audience string) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse("https://" + domainName + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &AuthMiddleware{validator: jwtValidator}, nil
}

// Authenticate returns an Echo middleware that validates JWT tokens and
// resolves the caller's dashboard role.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			role, subject, claims, err := m.validate(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
			ctx = context.WithValue(ctx, SubjectKey, subject)
			ctx = context.WithValue(ctx, RoleKey, role)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireRole returns a middleware that rejects callers without the role.
// It must run after Authenticate.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetRole(c) != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// ValidateToken validates a raw token (used by the WebSocket handshake,
// which cannot send an Authorization header) and returns the role.
func (m *AuthMiddleware) ValidateToken(ctx context.Context, token string) (string, error) {
	role, _, _, err := m.validate(ctx, token)
	return role, err
}

func (m *AuthMiddleware) validate(ctx context.Context, token string) (role, subject string, claims *validator.ValidatedClaims, err error) {
	parsed, err := m.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", "", nil, err
	}

	validated, ok := parsed.(*validator.ValidatedClaims)
	if !ok {
		return "", "", nil, domain.ErrUnauthorized
	}

	role = domain.RoleUser
	if custom, ok := validated.CustomClaims.(*CustomClaims); ok {
		role = custom.Role()
	}
	return role, validated.RegisteredClaims.Subject, validated, nil
}

// GetRole extracts the resolved dashboard role from the context.
func GetRole(c echo.Context) string {
	if role, ok := c.Request().Context().Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// GetSubject extracts the token subject from the context.
func GetSubject(c echo.Context) string {
	if sub, ok := c.Request().Context().Value(SubjectKey).(string); ok {
		return sub
	}
	return ""
}

// GetClaims extracts the validated claims from the context.
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}
