package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress_CaseAndWhitespace(t *testing.T) {
	assert.Equal(t,
		NormalizeAddress("10 Downing Street, London"),
		NormalizeAddress("  10   downing STREET,   london "))
}

func TestNormalizeAddress_FoldsAbbreviations(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"221B Baker St, London", "221b baker street, london"},
		{"221B Baker St., London", "221b baker street, london"},
		{"5th Ave, New York", "5th avenue, new york"},
		{"12 bd Haussmann, Paris", "12 boulevard haussmann, paris"},
		{"1 Abbey Rd", "1 abbey road"},
		{"Trafalgar Sq", "trafalgar square"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAddress(tt.raw), "raw: %q", tt.raw)
	}
}

func TestNormalizeAddress_DoesNotFoldInsideWords(t *testing.T) {
	// "first" contains "st" but is not an abbreviation token
	assert.Equal(t, "first street", NormalizeAddress("First St"))
	assert.Equal(t, "street fighter avenue", NormalizeAddress("Street Fighter Ave"))
}

func TestCacheKey_StableAndPrefixed(t *testing.T) {
	key := CacheKey("221b baker street, london")
	assert.True(t, strings.HasPrefix(key, "geo:addr:"))
	assert.Equal(t, key, CacheKey("221b baker street, london"))
	assert.NotEqual(t, key, CacheKey("221b baker street, paris"))

	// fixed length regardless of input length
	long := CacheKey(strings.Repeat("a very long address ", 50))
	assert.Len(t, long, len("geo:addr:")+32)
}
