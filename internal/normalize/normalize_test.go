package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderCanonicalisesSpellingVariants(t *testing.T) {
	assert.Equal(t, Header("nowhatsapp"), Header("No. WhatsApp"))
	assert.Equal(t, Header("nowhatsapp"), Header("NO_WHATSAPP"))
	assert.Equal(t, Header("nowhatsapp"), Header("no-whatsapp"))
	assert.Equal(t, "tanggaldisetujui", Header("Tanggal disetujui"))
}

func TestParseSheetDateUsesZeroBasedMonth(t *testing.T) {
	parsed := ParseSheetDate("Date(2024,4,1)")
	require.NotNil(t, parsed)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.May, parsed.Month())
	assert.Equal(t, 1, parsed.Day())

	withTime := ParseSheetDate("Date(2024,0,15,13,30,5)")
	require.NotNil(t, withTime)
	assert.Equal(t, time.January, withTime.Month())
	assert.Equal(t, 13, withTime.Hour())
	assert.Equal(t, 30, withTime.Minute())

	assert.Nil(t, ParseSheetDate("2024-05-01"))
}

func TestParseDateRoundTripsToISO(t *testing.T) {
	cases := map[string]string{
		"Date(2024,4,1)":        "2024-05-01",
		"Date(2023,11,31)":      "2023-12-31",
		"Date(2024,0,2,8,15,0)": "2024-01-02",
		"2024-05-01":            "2024-05-01",
	}
	for input, want := range cases {
		assert.Equal(t, want, ISODate(input), "input %q", input)
	}
}

func TestParseDateTruncatesToMidnight(t *testing.T) {
	parsed := ParseDate("Date(2024,4,1,13,45,10)")
	require.NotNil(t, parsed)
	assert.Equal(t, 0, parsed.Hour())
	assert.Equal(t, 0, parsed.Minute())

	kept := ParseDateTime("Date(2024,4,1,13,45,10)")
	require.NotNil(t, kept)
	assert.Equal(t, 13, kept.Hour())
}

func TestParseDateRejectsGarbage(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("bukan tanggal"))
	assert.Nil(t, ParseDateTime("Date()"))
}

func TestDMYDate(t *testing.T) {
	assert.Equal(t, "01/05/2024", DMYDate("Date(2024,4,1)"))
	assert.Equal(t, "", DMYDate(""))
	assert.Equal(t, "acak", DMYDate("acak"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 1.5, ParseDuration("1,5"))
	assert.Equal(t, 2.0, ParseDuration("durasi: 2 jam"))
	assert.Equal(t, 0.0, ParseDuration(""))
	assert.Equal(t, 0.0, ParseDuration("abc"))
	assert.Equal(t, 0.75, ParseDuration("0.75"))
}

func TestPhoneToUsername(t *testing.T) {
	assert.Equal(t, "81234567890", PhoneToUsername("6281234567890"))
	assert.Equal(t, "81234567890", PhoneToUsername("081234567890"))
	assert.Equal(t, "81234567890", PhoneToUsername("81234567890"))
	assert.Equal(t, "81234567890", PhoneToUsername("+62 812-3456-7890"))
	assert.Equal(t, "", PhoneToUsername("tanpa nomor"))
}

func TestDateLabelUsesLocaleTables(t *testing.T) {
	locale := DefaultLocale()
	// 2024-05-01 was a Wednesday (Rabu).
	assert.Equal(t, "Rabu, 1 Mei 2024", locale.DateLabelValue("Date(2024,4,1)"))
	assert.Equal(t, "tidak valid", locale.DateLabelValue("tidak valid"))
	assert.Equal(t, "", locale.DateLabelValue(""))
}

func TestNewLocaleFallsBackOnBadTables(t *testing.T) {
	locale := NewLocale([]string{"Jan"}, nil)
	assert.Len(t, locale.MonthNames, 12)
	assert.Len(t, locale.DayNames, 7)
}
