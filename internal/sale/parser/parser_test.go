package parser

import (
	"strconv"
	"testing"
	"time"

	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirect(t *testing.T) {
	raw := saledomain.RawScript{
		ID: "*4F",
		Name: "8/03/19-|-10:15:00-|-john01-|-15000-|-10.0.0.5-|-AA:BB:CC:DD:EE:FF-|-" +
			"01:00:00-|-Premium-|-vc-251-08.03.19-AGEN1-AUG-ALIAS1-x1-q18",
	}

	sale, err := ParseDirect(raw)
	require.NoError(t, err)

	want := time.Date(2019, time.August, 3, 10, 15, 0, 0, time.Local)
	assert.Equal(t, "*4F", sale.ID)
	assert.True(t, want.Equal(sale.SaleDate), "saleDate = %v, want %v", sale.SaleDate, want)
	assert.Equal(t, "john01", sale.Name)
	assert.Equal(t, int64(15000), sale.Price)
	assert.Equal(t, "10.0.0.5", sale.IP)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", sale.MAC)
	assert.Equal(t, "01:00:00", sale.Duration)
	assert.Equal(t, "Premium", sale.ProfileName)

	// comment sub-fields 3 and 5 carry the agent code and alias
	assert.Equal(t, "AGEN1", sale.AgenCode)
	assert.Equal(t, "ALIAS1", sale.ProfileAlias)
	assert.Equal(t, "vc-251-08.03.19-AGEN1-AUG-ALIAS1-x1-q18", sale.Comment)
	assert.Equal(t, raw.Name, sale.SampleName)
}

func TestParseDirect_CommentVariants(t *testing.T) {
	tests := []struct {
		name      string
		comment   string
		wantAgen  string
		wantAlias string
	}{
		{"vc with all sub-fields", "vc-251-08.03.19-AGEN1-AUG-ALIAS1-x1-q18", "AGEN1", "ALIAS1"},
		{"vc short comment", "vc-251", "", ""},
		{"vc agent only", "vc-251-08.03.19-AGEN1", "AGEN1", ""},
		{"non-vc comment", "manual topup note", "", ""},
		{"empty comment", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := saledomain.RawScript{
				ID:   "*1",
				Name: "8/03/19-|-10:15:00-|-u-|-1000-|-ip-|-mac-|-1h-|-Basic-|-" + tt.comment,
			}
			sale, err := ParseDirect(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAgen, sale.AgenCode)
			assert.Equal(t, tt.wantAlias, sale.ProfileAlias)
		})
	}
}

func TestParseDirect_Malformed(t *testing.T) {
	_, err := ParseDirect(saledomain.RawScript{ID: "*1", Name: "8/03/19-|-10:15:00-|-john01"})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseDirect_BadDate(t *testing.T) {
	raw := saledomain.RawScript{
		ID:   "*1",
		Name: "notadate-|-10:15:00-|-u-|-1000-|-ip-|-mac-|-1h-|-Basic-|-vc-251",
	}
	_, err := ParseDirect(raw)
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestParseGenerated(t *testing.T) {
	raw := saledomain.RawScript{
		ID:   "*A2",
		Name: "AGEN1.|.8/03/19.|.10:15:00.|.john02.|.Premium.|.x.|.20000.|.vc.|.AGEN2.|.ALIAS2",
	}

	sale, err := ParseGenerated(raw)
	require.NoError(t, err)

	want := time.Date(2019, time.August, 3, 10, 15, 0, 0, time.Local)
	assert.True(t, want.Equal(sale.SaleDate))
	assert.Equal(t, "john02", sale.Name)
	assert.Equal(t, "Premium", sale.ProfileName)
	assert.Equal(t, int64(20000), sale.Price)

	// the agent code comes from the comment, not component 0
	assert.Equal(t, "AGEN2", sale.AgenCode)
	assert.Equal(t, "ALIAS2", sale.ProfileAlias)
	assert.Equal(t, "vc.|.AGEN2.|.ALIAS2", sale.Comment)
}

func TestParseGenerated_NonVCComment(t *testing.T) {
	raw := saledomain.RawScript{
		ID:   "*A3",
		Name: "AGEN1.|.8/03/19.|.10:15:00.|.john03.|.Basic.|.x.|.5000.|.note",
	}

	sale, err := ParseGenerated(raw)
	require.NoError(t, err)
	assert.Empty(t, sale.AgenCode)
	assert.Empty(t, sale.ProfileAlias)
}

func TestParseGenerated_Malformed(t *testing.T) {
	_, err := ParseGenerated(saledomain.RawScript{ID: "*A4", Name: "AGEN1.|.8/03/19.|.10:15:00"})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseGenerated_BadDate(t *testing.T) {
	raw := saledomain.RawScript{
		ID:   "*A5",
		Name: "AGEN1.|.13/45/19.|.10:15:00.|.u.|.Basic.|.x.|.5000.|.note",
	}
	_, err := ParseGenerated(raw)
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestStampDerivation(t *testing.T) {
	sale, err := ParseDirect(saledomain.RawScript{
		ID:   "*1",
		Name: "8/03/19-|-10:15:00-|-john01-|-1000-|-ip-|-mac-|-1h-|-Basic-|-vc-251",
	})
	require.NoError(t, err)
	assert.Equal(t, sale.Stamp(), sale.IDStamp)

	wantUnix := time.Date(2019, time.August, 3, 10, 15, 0, 0, time.Local).Unix()
	assert.Equal(t, "john01-"+strconv.FormatInt(wantUnix, 10), sale.IDStamp)
}

func TestParsePriceLenient(t *testing.T) {
	sale, err := ParseDirect(saledomain.RawScript{
		ID:   "*1",
		Name: "8/03/19-|-10:15:00-|-u-|-oops-|-ip-|-mac-|-1h-|-Basic-|-vc-251",
	})
	require.NoError(t, err)
	assert.Zero(t, sale.Price)
}
