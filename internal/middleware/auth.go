package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"atelier/internal/auth"
	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
)

// CurrentUserKey is the context key under which LoadUser stores the
// resolved *model.User.
const CurrentUserKey = "currentUser"

// Authenticate verifies the access token from the Authorization header or
// the session cookie (header takes precedence) and stores the parsed token
// in the context. Missing, malformed or expired tokens yield 401.
func Authenticate(secret, cookieName string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:Authorization:Bearer ,cookie:" + cookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.Auth("not authorized to access this route")
		},
	})
}

// LoadUser resolves the authenticated user from the token claims, rejects
// blacklisted (logged-out) tokens, and attaches the user to the context.
// Must run after Authenticate.
func LoadUser(users repository.UserRepository, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := tokenClaims(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			if revoked, _ := tokens.IsTokenBlacklisted(ctx, claims.ID); revoked {
				return apperrors.Auth("not authorized to access this route")
			}

			id, err := uuid.Parse(claims.UserID)
			if err != nil {
				return apperrors.Auth("not authorized to access this route")
			}

			user, err := users.FindByID(ctx, id)
			if err != nil {
				return apperrors.Auth("not authorized to access this route")
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

// RequireRoles rejects authenticated users whose role is not in the allowed
// set. Must run after LoadUser.
func RequireRoles(allowed ...string) echo.MiddlewareFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperrors.Auth("not authorized to access this route")
			}
			if !allowedSet[user.Role] {
				return apperrors.Authz("user role '" + user.Role + "' is not authorized to access this route")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(CurrentUserKey).(*model.User)
	return user
}

// TokenClaims returns the verified claims attached by Authenticate.
func TokenClaims(c echo.Context) (*auth.Claims, error) {
	return tokenClaims(c)
}

func tokenClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, apperrors.Auth("not authorized to access this route")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, apperrors.Auth("not authorized to access this route")
	}
	return claims, nil
}
