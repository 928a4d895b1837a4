package cli

import (
	"fmt"
	"io"

	"github.com/agbru/fpcore/internal/bigint"
)

const (
	// CounterexampleLimit is the length beyond which a counterexample is
	// truncated in the report.
	CounterexampleLimit = 240
	// DisplayEdges is the number of characters kept on each side of a
	// truncated string.
	DisplayEdges = 100
)

// FormatValue renders x as 0x-prefixed hexadecimal when hex is set and in
// the BigInteger(...) diagnostic form otherwise.
func FormatValue(x bigint.BigInteger, hex bool) string {
	if hex {
		return "0x" + x.Hex()
	}
	return x.String()
}

// DisplayValues writes one value per line.
func DisplayValues(out io.Writer, values []bigint.BigInteger, hex bool) {
	for _, v := range values {
		fmt.Fprintln(out, FormatValue(v, hex))
	}
}

// FormatTruncated shortens s to its first and last DisplayEdges characters
// when it is longer than limit.
func FormatTruncated(s string, limit int) string {
	if len(s) <= limit || len(s) <= 2*DisplayEdges {
		return s
	}
	return fmt.Sprintf("%s...%s (%d chars)", s[:DisplayEdges], s[len(s)-DisplayEdges:], len(s))
}
