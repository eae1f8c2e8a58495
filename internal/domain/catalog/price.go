package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRegex matches the first comma-grouped or plain run of digits.
var priceRegex = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)

// ParsePrice extracts the first numeric amount from free text ("1,200円" -> 1200).
func ParsePrice(s string) (int64, bool) {
	m := priceRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
