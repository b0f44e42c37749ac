package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	issuedAt := time.Date(2026, time.March, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		seq      int64
		orderID  string
		want     string
	}{
		{
			name:     "default template",
			template: DefaultInvoiceNumberTemplate,
			seq:      42,
			want:     "INV-20260305-000042",
		},
		{
			name:     "short year",
			template: "{YY}{MM}-{SEQ}",
			seq:      7,
			want:     "2603-7",
		},
		{
			name:     "padded sequence wider than value",
			template: "{SEQ4}",
			seq:      12,
			want:     "0012",
		},
		{
			name:     "padded sequence narrower than value",
			template: "{SEQ2}",
			seq:      12345,
			want:     "12345",
		},
		{
			name:     "order id token",
			template: "INV-{SO}-{SEQ}",
			seq:      3,
			orderID:  "1948271",
			want:     "INV-1948271-3",
		},
		{
			name:     "no tokens",
			template: "FIXED",
			seq:      1,
			want:     "FIXED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatInvoiceNumber(tt.template, issuedAt, tt.seq, tt.orderID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatInvoiceNumber_Errors(t *testing.T) {
	issuedAt := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	_, err := FormatInvoiceNumber("", issuedAt, 1, "")
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{SEQ}", issuedAt, 0, "")
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{SEQ}", issuedAt, -5, "")
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{BOGUS}-{SEQ}", issuedAt, 1, "")
	assert.Error(t, err)
}

func TestHasSequenceToken(t *testing.T) {
	assert.True(t, HasSequenceToken(DefaultInvoiceNumberTemplate))
	assert.True(t, HasSequenceToken("INV-{SEQ}"))
	assert.True(t, HasSequenceToken("{SEQ4}"))
	assert.False(t, HasSequenceToken("FPC-{YYYY}{MM}{DD}-SO{SO}"))
	assert.False(t, HasSequenceToken("FIXED"))
	assert.False(t, HasSequenceToken("{SEQX}"))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$64.77", FormatCents(6477))
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "$1000.00", FormatCents(100000))
	assert.Equal(t, "-$0.50", FormatCents(-50))
	assert.Equal(t, "-$12.34", FormatCents(-1234))
}
