// Package normalize holds the string canonicalization rules shared by
// ledger title matching and reconciliation value comparison.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// competencyLayout is the day/month/year shape competency dates arrive in.
const competencyLayout = "02/01/2006"

// canonicalLayout is the comparison form, matching how the ledger records
// periods (day-month abbreviation-year, English month names).
const canonicalLayout = "02-Jan-2006"

// payrollPrefix marks ledger value cells that reference a payroll formula
// rather than a number; they normalize to empty instead of being parsed.
const payrollPrefix = "base.folha"

// invariantNumber accepts plain decimals with an optional comma as the
// thousands separator and a period as the decimal separator.
var invariantNumber = regexp.MustCompile(`^-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Title strips all whitespace and control characters so column titles like
// "C N P J" and "cnpj\t" compare equal. Case folding is left to the caller.
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TitleEquals reports whether two column titles are equal after
// normalization, ignoring case.
func TitleEquals(a, b string) bool {
	return strings.EqualFold(Title(a), Title(b))
}

// Currency reformats a monetary string into the pt-BR two-decimal form used
// for comparison ("1500" -> "1.500,00"). Empty/whitespace-only input and
// payroll-formula references normalize to the empty string. Anything that
// does not look like an invariant decimal passes through unchanged and gets
// compared literally.
func Currency(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.HasPrefix(trimmed, payrollPrefix) {
		return ""
	}
	if !invariantNumber.MatchString(trimmed) {
		return s
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return s
	}
	return ptBR.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// CompetencyDate canonicalizes a dd/MM/yyyy competency date into the
// dd-Mon-yyyy comparison form. A value in any other shape yields the empty
// string, which only ever matches an equally empty ledger cell.
func CompetencyDate(s string) string {
	t, err := time.Parse(competencyLayout, strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return t.Format(canonicalLayout)
}
