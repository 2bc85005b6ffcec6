package webhook

import (
	"github.com/gin-gonic/gin"

	pkgLog "github.com/gelugu/judah-bot/pkg/log"
	pkgResponse "github.com/gelugu/judah-bot/pkg/response"
)

// Guard rejects webhook calls from outside the allowlist or without the
// configured secret token. The client IP comes from gin, so forwarding
// headers count only when the engine trusts the sending proxy.
func Guard(l pkgLog.Logger, v *SecurityValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := v.ValidateIPAddress(c.ClientIP()); err != nil {
			l.Warnf(ctx, "webhook guard: %v", err)
			pkgResponse.Forbidden(c)
			c.Abort()
			return
		}

		if err := v.ValidateSecretToken(c.GetHeader(SecretTokenHeader)); err != nil {
			l.Warnf(ctx, "webhook guard: %v", err)
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
