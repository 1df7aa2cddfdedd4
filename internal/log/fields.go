package log

import "fmt"

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldUsername   = "username"
	FieldTxID       = "transaction_id"
	FieldTxType     = "transaction_type"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldDate       = "date"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldPeriods    = "periods"
	FieldItems      = "items"
	FieldReportID   = "report_id"
	FieldBackend    = "backend"
	FieldLowSavings = "low_savings"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentAccount  = "account"
	ComponentLedger   = "ledger"
	ComponentForecast = "forecast"
	ComponentReport   = "report"
	ComponentStorage  = "storage"
	ComponentBackend  = "backend"
	ComponentConfig   = "config"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRegister = "register"
	OpLogin    = "login"
	OpForecast = "forecast"
	OpReport   = "report"
	OpValidate = "validate"
	OpMigrate  = "migrate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeAuth          = "auth_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeConflict      = "conflict_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds the error message; a nil error adds nothing.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithUser adds user identity fields. The password is never logged.
func (f LogFields) WithUser(id int64, username string) LogFields {
	f[FieldUserID] = id
	f[FieldUsername] = username
	return f
}

// WithTransaction adds transaction fields. amount is any fmt.Stringer so
// decimal values render exactly.
func (f LogFields) WithTransaction(id int64, typ, category, date string, amount fmt.Stringer) LogFields {
	f[FieldTxID] = id
	f[FieldTxType] = typ
	f[FieldCategory] = category
	f[FieldDate] = date
	f[FieldAmount] = amount.String()
	return f
}

func (f LogFields) WithPeriod(year int, month string) LogFields {
	f[FieldYear] = year
	f[FieldMonth] = month
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
