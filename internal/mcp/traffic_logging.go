package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs every request/response pair crossing the
// server at debug level. Payloads are JSON-encoded whole; board state is
// small enough that truncation would hide more than it saves.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			base := []any{
				"direction", direction,
				"method", method,
				"session_id", sessionID(req),
			}
			logger.Debug("mcp traffic", append(base,
				"stage", "request",
				"params", encodePayload(requestParams(req)))...)

			result, err := next(ctx, method, req)

			// Notifications have no response stage to report.
			if !strings.HasPrefix(method, "notifications/") {
				attrs := append(base,
					"stage", "response",
					"result", encodePayload(result))
				if err != nil {
					attrs = append(attrs, "error", err)
				}
				logger.Debug("mcp traffic", attrs...)
			}
			return result, err
		}
	}
}

// sessionID extracts the session id from a request; half-built requests
// yield an empty id rather than a panic.
func sessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	if session := req.GetSession(); session != nil {
		id = session.ID()
	}
	return id
}

func requestParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

func encodePayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
