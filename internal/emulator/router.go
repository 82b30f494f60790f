package emulator

import (
	"time"

	"github.com/dmitrijs2005/trowebseed/internal/common"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the GraphQL endpoint behind bearer auth. When local is
// non-nil the upload endpoint is mounted too; it is authorized by the grant
// fields rather than the API key.
func NewRouter(h *Handler, apiKey string, local *LocalSigner, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.POST(common.GraphQLPath, BearerAuth(apiKey), h.GraphQL)

	if local != nil {
		r.POST(UploadPath, h.Upload(local))
	}

	return r
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
