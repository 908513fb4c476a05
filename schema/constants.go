package schema

// Custom string types for type safety.
type (
	// ErrorKind classifies evaluation failures.
	ErrorKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the archive.
	DatabaseBackend string
)

// Error taxonomy. All kinds except InputShapeError are item-scoped and
// recovered by the batch driver; InputShapeError is batch-fatal.
const (
	ParseError          ErrorKind = "parse_error"            // malformed expression
	UnknownSymbolError  ErrorKind = "unknown_symbol"         // unsupported function or identifier
	DomainError         ErrorKind = "domain_error"           // argument outside a function's domain, or non-finite result
	DivisionByZeroError ErrorKind = "division_by_zero"       // zero divisor, or zero target during relative error
	MissingFieldError   ErrorKind = "missing_field"          // required batch-item field absent
	InputShapeError     ErrorKind = "input_shape"            // batch payload is not a sequence
	TimeoutError        ErrorKind = "timeout"                // batch deadline fired before the item ran
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputMode reports whether m is a supported output mode.
func ValidOutputMode(m OutputMode) bool {
	switch m {
	case TextOut, CSVOut, JSONOut, ParquetOut:
		return true
	}
	return false
}

// ValidDatabaseBackend reports whether b is a supported archive backend.
func ValidDatabaseBackend(b DatabaseBackend) bool {
	switch b {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend:
		return true
	}
	return false
}
