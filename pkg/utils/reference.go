package utils

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// QuoteReferencePrefix prefixes every generated quote reference.
const QuoteReferencePrefix = "ORC-"

// NewQuoteReference returns a unique, time-sortable quote reference such as
// ORC-01J9Z3K7M2X4Q8R5T6V7W8Y9ZA.
func NewQuoteReference() string {
	return QuoteReferencePrefix + ulid.Make().String()
}

// IsQuoteReference reports whether s looks like a reference produced by
// NewQuoteReference.
func IsQuoteReference(s string) bool {
	if !strings.HasPrefix(s, QuoteReferencePrefix) {
		return false
	}
	_, err := ulid.ParseStrict(strings.TrimPrefix(s, QuoteReferencePrefix))
	return err == nil
}
