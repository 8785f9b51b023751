package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUsername contextKey = "username"
	ContextKeyTokenID  contextKey = "token_id"
	ContextKeyLocale   contextKey = "locale"
)

const (
	RequestParamPage  = "page"
	RequestParamLimit = "limit"
	RequestParamLang  = "lang"
)

const (
	RequestParamID   = "id"
	RequestMaxMemory = 10 << 20 // 10 MB
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelStoreScopeName      = "store"
	OtelBackupScopeName     = "backup"
	OtelS3ScopeName         = "s3"
)

const (
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	ContentTypeJSON                 = "application/json"
	ContentTypeTarGzip              = "application/gzip"
	ContentTypeXLSX                 = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	ResponseErrorRequestLimitExceeded = "request limit exceeded"
	ResponseErrorPrepareShutdown      = "server is preparing to shut down"
	ResponseErrorUnhealthy            = "server is unhealthy"
)

const (
	Empty = ""
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = "2006-01-02"
)

// Collection file names inside the data directory. The backup archive
// stores copies of these under the same member names.
const (
	FileRooms       = "rooms.json"
	FileBookings    = "bookings.json"
	FileMessages    = "messages.json"
	FileAdmins      = "admins.json"
	FileNews        = "news.json"
	FileSiteContent = "site_content.json"
	FileUsers       = "users.json"
	FileHomeContent = "home_content.json"
)

const (
	DefaultRoomImage = "img/placeholder.jpg"
	RoomImageDir     = "img/rooms"
)
