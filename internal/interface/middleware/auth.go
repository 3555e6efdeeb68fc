package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"reminderkeeper/pkg/helpers"
	"reminderkeeper/pkg/response"
)

// sessionFromRequest validates the access token cookie against Redis and
// returns the session hash, or nil when the request is unauthenticated.
func sessionFromRequest(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) map[string]string {
	token, err := c.Cookie("access_token")
	if err != nil || token == "" {
		return nil
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return nil
	}
	key := "user:session:" + claims.UserID
	data, err := rdb.HGetAll(c.Request.Context(), key).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return nil
	}
	return data
}

func setSession(c *gin.Context, data map[string]string) {
	c.Set("userID", data["user_id"])  // required by handlers
	c.Set("userName", data["name"])   // extra convenience
	c.Set("userEmail", data["email"]) // extra convenience
}

// Auth validates the access token and ensures an active session exists in
// Redis. JSON variant for the /api group: failures get a 401 envelope.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := sessionFromRequest(c, rdb, jwt)
		if data == nil {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		setSession(c, data)
		c.Next()
	}
}

// WebAuth is the page variant: unauthenticated browsers are redirected to the
// login page instead of receiving JSON.
func WebAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := sessionFromRequest(c, rdb, jwt)
		if data == nil {
			c.Redirect(http.StatusFound, "/user/login")
			c.Abort()
			return
		}
		setSession(c, data)
		c.Next()
	}
}

// Guest sends already-authenticated browsers away from login/register pages.
func Guest(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionFromRequest(c, rdb, jwt) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
