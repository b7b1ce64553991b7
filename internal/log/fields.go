package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldUserID    = "user_id"
	FieldTxID      = "transaction_id"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldSymbol    = "symbol"
	FieldBackend   = "backend"
)

// Standard component names.
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentStorage    = "storage"
	ComponentAuth       = "auth"
	ComponentFinance    = "finance"
	ComponentInvestment = "investment"
	ComponentSimulation = "simulation"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentExport     = "export"
	ComponentCLI        = "cli"
	ComponentRateLimit  = "rate_limit"
	ComponentSecurity   = "security"
)
