package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	var testCases = []struct {
		description string
		SQL         string
		expect      []int
	}{
		{
			description: "no placeholders",
			SQL:         "select 1",
			expect:      nil,
		},
		{
			description: "plain placeholders",
			SQL:         "a = ? and b = ?",
			expect:      []int{4, 14},
		},
		{
			description: "single quoted literal",
			SQL:         "a = '?' and b = ?",
			expect:      []int{16},
		},
		{
			description: "escaped quote inside literal",
			SQL:         "a = 'it''s ?' and b = ?",
			expect:      []int{22},
		},
		{
			description: "quoted identifiers",
			SQL:         "\"col?\" = ? and `x?` = ?",
			expect:      []int{9, 22},
		},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Placeholders(testCase.SQL), testCase.description)
	}
}
