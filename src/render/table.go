package render

import (
	"fmt"
	"strings"

	"market-pulse/src/analysis/core"
	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------
// Fixed-width table rendering. Pure string work: rendering the same row set
// twice yields byte-identical output. Column widths are table-local; two
// tables with different label lengths will not align with each other.
// -----------------------------------------------------------------------------

// PricePolicy selects the price formatting for a table.
type PricePolicy int

const (
	// PolicyCents renders prices comma-grouped with two decimals.
	PolicyCents PricePolicy = iota
	// PolicyWhole renders prices comma-grouped with no decimals (high-value
	// crypto rows).
	PolicyWhole
)

const (
	minLabelWidth = 4
	minPriceWidth = 6
	pctWidth      = 8

	// Placeholder emitted for an empty row set so the delivery payload is
	// never structurally empty.
	noDataLine = "  no data"

	// DividerLine separates the top and bottom slices inside a split section.
	DividerLine = "---"
)

// -----------------------------------------------------------------------------

// RenderTable renders one table block, one line per row. Each line leads with
// a sign marker ('+' for change >= 0, '-' otherwise) so the diff-style fence
// on the delivery surface colors the row. When withTags is set, a severity
// tag is appended to rows whose move crosses the +-4 / +-7 thresholds.
func RenderTable(rows []models.MPriceObservation, policy PricePolicy, withTags bool) string {
	if len(rows) == 0 {
		return noDataLine
	}

	labelWidth := minLabelWidth
	priceWidth := minPriceWidth
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if w := len(FormatPrice(row.CurrentPrice, policy)); w > priceWidth {
			priceWidth = w
		}
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}

		marker := "+"
		if row.ChangePct < 0 {
			marker = "-"
		}

		sb.WriteString(fmt.Sprintf("%s %-*s  %*s  %*s",
			marker,
			labelWidth, row.Label,
			priceWidth, FormatPrice(row.CurrentPrice, policy),
			pctWidth, FormatPercent(row.ChangePct),
		))

		if withTags {
			if tag := core.SeverityTag(row.ChangePct); tag != "" {
				sb.WriteString(" " + tag)
			}
		}
	}

	return sb.String()
}

// -----------------------------------------------------------------------------

// FormatPrice renders a price under the given policy, grouping thousands.
func FormatPrice(v float64, policy PricePolicy) string {
	var s string
	if policy == PolicyWhole {
		s = fmt.Sprintf("%.0f", v)
	} else {
		s = fmt.Sprintf("%.2f", v)
	}
	return groupThousands(s)
}

// -----------------------------------------------------------------------------

// FormatPercent renders a change with an explicit sign and two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// -----------------------------------------------------------------------------

// Truncate caps s at limit display characters. Oversized input is cut to
// limit-3 characters plus a three-character ellipsis marker, total length
// exactly limit. Counting is rune-based so a cut never splits a multi-byte
// character.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// -----------------------------------------------------------------------------

// groupThousands inserts comma separators into the integer part of a
// formatted number.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot:]
	}

	if len(intPart) > 3 {
		var sb strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			sb.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if sb.Len() > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(intPart[i : i+3])
		}
		intPart = sb.String()
	}

	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
