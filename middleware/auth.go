package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jansuvidha/noticeboard/utils"
)

const (
	// ContextUserIDKey stores the authenticated account id in the gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the account username in the gin context.
	ContextUsernameKey = "username"
)

// AuthRequired guards the admin panel: a valid, unrevoked Bearer token must
// accompany the request. On success the account identity is placed in the
// context for the handlers.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, code, msg := bearerToken(ctx.GetHeader("Authorization"))
		if code != 0 {
			abortUnauthorized(ctx, code, msg)
			return
		}

		if utils.IsTokenBlacklisted(token) {
			abortUnauthorized(ctx, 40104, "token revoked")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			abortUnauthorized(ctx, 40105, "invalid token")
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

// bearerToken extracts the token from an Authorization header. A zero code
// means the header was well formed.
func bearerToken(header string) (token string, code int, msg string) {
	if header == "" {
		return "", 40101, "authorization header missing"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", 40102, "invalid authorization header format"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", 40103, "empty bearer token"
	}
	return token, 0, ""
}

func abortUnauthorized(ctx *gin.Context, code int, msg string) {
	utils.Error(ctx, http.StatusUnauthorized, code, msg)
	ctx.Abort()
}
