package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceIDHeader echoes the per-request id back to the caller. The same id
// lands in the trace_id field of error envelopes and log lines.
const TraceIDHeader = "X-Trace-ID"

// TraceIDMiddleware tags every request with a fresh uuid so a support
// ticket quoting the header can be matched against the logs.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.NewString()
		c.Set("trace_id", traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}
