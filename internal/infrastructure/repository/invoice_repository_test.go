package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInvoiceSequence(t *testing.T) {
	const prefix = "20260828"

	testCases := []struct {
		name     string
		nos      []string
		expected int
	}{
		{"first of the day", nil, 1},
		{"continues the sequence", []string{"20260828-001", "20260828-002"}, 3},
		{"four digits follow three", []string{"20260828-998", "20260828-999"}, 1000},
		{"numeric max beats lexical max", []string{"20260828-999", "20260828-1000"}, 1001},
		{"ignores malformed suffixes", []string{"20260828-xyz", "20260828-007"}, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, nextInvoiceSequence(tc.nos, prefix))
		})
	}
}
