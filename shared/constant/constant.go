package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyTodo contextKey = "todo"
)

const (
	RequestParamID   = "id"
	RequestParamDone = "done"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderAllow              = "Allow"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON        = "application/json"
	ContentTypeJSONCharset = "application/json; charset=utf-8"
)

const (
	ResponseErrorMethodNotAllowed     = "Method Not Allowed"
	ResponseErrorInternal             = "Internal Server Error"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)
