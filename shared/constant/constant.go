package constant

import (
	"time"
)

// SystemUser is recorded as the actor for requests authenticated by API key.
const SystemUser = "system"

type contextKey string

// Request context keys filled by the auth middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

var StaffRoles = []string{RoleSuperAdmin, RoleAdmin}

// Query and path parameters.
const (
	RequestParamID      = "id"
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamFormat  = "format"

	RequestMaxMemory = 10 << 20
)

const FormatPDF = "pdf"

// Listing defaults.
const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	MaxValueLimit       = 100
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

// Audit columns shared by every table.
const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
	PqErrorCodeCheckViolation  = "23514"
)

const (
	DateFormat       = time.RFC3339
	DateOnlyFormat   = time.DateOnly
	DateTimeFormat   = time.DateTime
	MinutesToSeconds = 60
)

// Tracing scopes.
const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"
	OtelPDFScopeName        = "pdf"
	OtelJWTScopeName        = "jwt"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderDisposition        = "Content-Disposition"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

// Cache prefixes cleared across domains.
const (
	CachePrefixRoom      = "room:"
	CachePrefixRoomOffer = "room_offer:"
	CachePrefixReport    = "report:"
)

const (
	Asterix = "*"
	Empty   = ""
)
