// Package format renders invoice numbers and currency amounts. Both
// helpers are pure so they can be exercised without a database.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

const DefaultInvoiceNumberTemplate = "INV-{YYYY}{MM}{DD}-{SEQ6}"

// HasSequenceToken reports whether the template carries a {SEQ} or
// {SEQn} token. Date and order-id tokens repeat when an invoice is
// voided and reissued the same day, so only the sequence keeps numbers
// distinct across reissues.
func HasSequenceToken(template string) bool {
	return strings.Contains(template, "{SEQ}") || seqPadRe.MatchString(template)
}

// FormatInvoiceNumber expands a number template against the issue time,
// the monotonic sequence, and the order id.
//
// Supported tokens: {YYYY} {YY} {MM} {DD} {SEQ} {SEQn} {SO}.
func FormatInvoiceNumber(
	template string,
	issuedAt time.Time,
	seq int64,
	orderID string,
) (string, error) {

	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}

	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{SO}", orderID)

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}

// FormatCents renders an int64 cent amount as a dollar string,
// e.g. 6477 -> "$64.77", -50 -> "-$0.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
