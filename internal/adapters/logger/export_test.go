// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry exposes errorEntry to the external test package.
type ErrorEntry = errorEntry

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
