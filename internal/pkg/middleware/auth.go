package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/config"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/httpx"
	"github.com/NCUHOME-Y/TimeLedger-BE/pkg/mypubliclib/util"
)

const EmailKey = "email"

// JWTAuth JWT 鉴权，解析出的 email 放进请求上下文
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			httpx.Fail(c, http.StatusUnauthorized, constant.InvalidJWT)
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := util.ParseToken(cfg, tokenStr)
		if err != nil {
			httpx.Fail(c, http.StatusUnauthorized, constant.InvalidJWT)
			c.Abort()
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// AuthedEmail 取出鉴权后的用户身份
func AuthedEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}
