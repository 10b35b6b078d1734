package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// API prefix shared by every JSON endpoint
	APIPrefix = "/api"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeySessionID = "session_id"
	ContextKeySession   = "session"

	// Database table names
	TableUsers         = "users"
	TableTickets       = "tickets"
	TableTicketImages  = "ticket_images"
	TableActivityLogs  = "activity_logs"
	TableNotifications = "notifications"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized"
	ErrMsgInvalidToken        = "Invalid token"
	ErrMsgForbidden           = "Forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgTicketNotFound      = "Ticket not found"
)
