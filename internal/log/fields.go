package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldConcept      = "concept"
	FieldCategory     = "category"
	FieldAmountCents  = "amount_cents"
	FieldStatus       = "status"
	FieldTransactions = "transactions"
	FieldDocument     = "document"
	FieldBackend      = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentBlob     = "blob"
	ComponentAMQP     = "amqp"
	ComponentAuth     = "auth"
	ComponentNotifier = "notifier"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpSave      = "save"
	OpBootstrap = "bootstrap"
	OpAppend    = "append"
	OpMerge     = "merge"
	OpLogin     = "login"
	OpLogout    = "logout"
	OpPublish   = "publish"
	OpConsume   = "consume"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
