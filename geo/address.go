package geo

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// abbreviations folded during normalization so that trivially different
// spellings of the same address share a cache entry.
var abbreviations = map[string]string{
	"st":   "street",
	"st.":  "street",
	"ave":  "avenue",
	"ave.": "avenue",
	"av":   "avenue",
	"av.":  "avenue",
	"bd":   "boulevard",
	"bd.":  "boulevard",
	"blvd": "boulevard",
	"rd":   "road",
	"rd.":  "road",
	"pl":   "place",
	"pl.":  "place",
	"sq":   "square",
	"sq.":  "square",
}

// NormalizeAddress lower-cases, collapses whitespace and folds common street
// abbreviations. The normalized form is the cache identity of an address.
func NormalizeAddress(address string) string {
	lower := strings.ToLower(strings.TrimSpace(address))
	fields := strings.Fields(lower)
	for i, f := range fields {
		trimmed := strings.TrimRight(f, ",")
		if full, ok := abbreviations[trimmed]; ok {
			suffix := ""
			if strings.HasSuffix(f, ",") {
				suffix = ","
			}
			fields[i] = full + suffix
		}
	}
	return strings.Join(fields, " ")
}

// CacheKey derives a fixed-length cache key from a normalized address.
func CacheKey(normalizedAddress string) string {
	sum := sha256.Sum256([]byte(normalizedAddress))
	return "geo:addr:" + hex.EncodeToString(sum[:16])
}
