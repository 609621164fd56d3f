package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Student identifier pattern - registration numbers such as U20CS1001 or 20/CS/1001
	IdentifierPattern = `^[A-Za-z0-9][A-Za-z0-9/\-]{3,29}$`

	// Payment reference pattern - bank or gateway transaction references
	TransactionRefPattern = `^[A-Za-z0-9\-_/]{4,64}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Identifier     *regexp.Regexp
	TransactionRef *regexp.Regexp
}{
	Identifier:     regexp.MustCompile(IdentifierPattern),
	TransactionRef: regexp.MustCompile(TransactionRefPattern),
}
