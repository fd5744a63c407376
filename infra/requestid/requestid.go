package requestid

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const Header = "X-Request-ID"

const maxLength = 128

type ctxKey struct{}

var key = ctxKey{}

func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

// Generate returns 32 hex chars, the same shape as a trace id.
func Generate() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Middleware keeps a caller-supplied X-Request-ID or generates one, stores it in the
// request context and echoes it on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if id == "" || len(id) > maxLength {
			id = Generate()
		}
		c.Request = c.Request.WithContext(NewContext(c.Request.Context(), id))
		c.Header(Header, id)
		c.Next()
	}
}
