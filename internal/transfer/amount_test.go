package transfer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    int64
		wantErr bool
	}{
		{name: "Basic", amount: "80.73", want: 8073},
		{name: "Whole", amount: "100", want: 10000},
		{name: "SingleDecimal", amount: "9.9", want: 990},
		{name: "TruncatesSubCent", amount: "10.999", want: 1099},
		// 4.35*100 is 434.99999... in float64; a float intermediate plus
		// truncation would lose a cent.
		{name: "NoBinaryDrift", amount: "4.35", want: 435},
		{name: "Zero", amount: "0", want: 0},
		{name: "NonNumeric", amount: "not-a-number", wantErr: true},
		{name: "Negative", amount: "-1.00", wantErr: true},
		{name: "Empty", amount: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toMinorUnits(json.Number(tt.amount))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "eur", normalizeCurrency("EUR"))
	assert.Equal(t, "usd", normalizeCurrency("usd"))
}
