package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/akoreshkov/bloghub-be/config"
	"github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/model"
	"github.com/gin-gonic/gin"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

// TokenVerifier abstracts the firebase auth client so tests can inject
// a fake. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthConfig struct {
	// AccountNotRequired lets a verified token through without a local
	// user profile (used by the profile-creation route itself).
	AccountNotRequired bool
	// LoginRedirect responds with a 302 to the login URL instead of a
	// JSON error (used by the browser-facing create/edit routes).
	LoginRedirect bool
}

func Auth(userDB db.UserDatabase, verifier TokenVerifier, authConfig *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken, ok := bearerToken(c)
		if !ok {
			reject(c, authConfig, http.StatusUnauthorized, "no valid authorization header")
			return
		}

		token, err := verifier.VerifyIDToken(c, idToken)
		if err != nil {
			reject(c, authConfig, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if authConfig.AccountNotRequired {
				return
			}
			reject(c, authConfig, http.StatusForbidden, "must have a user profile")
			return
		}
		c.Set(USER_KEY, user)
	}
}

func reject(c *gin.Context, authConfig *AuthConfig, status int, message string) {
	if authConfig.LoginRedirect {
		c.Redirect(http.StatusFound, config.LoginURL)
	} else {
		c.JSON(status, gin.H{
			"success": false,
			"message": message,
		})
	}
	c.Abort()
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") || len(header) < 8 {
		return "", false
	}
	return header[7:], true
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

// MustGetLocalUser assumes the Auth middleware ran with a required
// account. It panics otherwise.
func MustGetLocalUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}
