package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testVocabulary() *Vocabulary {
	return NewVocabulary("*",
		[]string{"Freizeit", "Recurring", "ARCHIVE"},
		map[string]string{"Morgen_Abend": "Morgen/Abend"})
}

func TestMatchHeading(t *testing.T) {
	v := testVocabulary()
	prev := Activity{Name: "Before", Type: "Old"}

	tests := []struct {
		line string
		want Activity
	}{
		{"** Work :Daily:", Activity{"Work", "Daily"}},
		{"** Rest :Freizeit:", Activity{"Rest", ""}},
		{"* Sport   :Freizeit:Recurring:", Activity{"Sport", ""}},
		{"*** Lesen :Buch:Freizeit:", Activity{"Lesen", "Buch"}},
		{"** Routine :Morgen_Abend:", Activity{"Routine", "Morgen/Abend"}},
		{"** Routine :Morgen_Abend:Recurring:", Activity{"Routine", "Morgen/Abend"}},
		{"** Old :Projekt:ARCHIVE:", Activity{"Old", "Projekt"}},
		// not headings
		{"** No tags here", prev},
		{"Work :Daily:", prev},
		{"**Work :Daily:", prev},
		{"  CLOCK: [2024-01-01 Mo 22:00]", prev},
		{"", prev},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			require.Equal(t, tt.want, v.MatchHeading(tt.line, prev))
		})
	}
}

func TestCleanTypeRemovesEveryNoiseToken(t *testing.T) {
	v := testVocabulary()
	for _, raw := range []string{
		"Freizeit",
		"Recurring:ARCHIVE",
		"FreiFreizeitzeit",
		"::Daily::Freizeit",
		"ARCHIVEProjektRecurring",
	} {
		got := v.CleanType(raw)
		for _, tok := range []string{"Freizeit", "Recurring", "ARCHIVE", ":"} {
			require.NotContains(t, got, tok, "CleanType(%q) = %q", raw, got)
		}
	}
}

func TestCleanTypeRewriteIsExact(t *testing.T) {
	v := testVocabulary()
	require.Equal(t, "Morgen/Abend", v.CleanType("Morgen_Abend"))
	require.Equal(t, "Morgen_Abend_Nacht", v.CleanType("Morgen_Abend_Nacht"))
	require.Equal(t, "Morgen_Abendx", v.CleanType("Morgen_Abendx"))
	require.Equal(t, "Morgen", v.CleanType("Morgen"))
	require.False(t, strings.Contains(v.CleanType("Vor_Morgen_Abend"), "/"))
}

func TestHeadingCustomMarker(t *testing.T) {
	v := NewVocabulary("#", nil, nil)
	a, ok := v.Heading("## Notes :Writing:")
	require.True(t, ok)
	require.Equal(t, Activity{"Notes", "Writing"}, a)

	_, ok = v.Heading("** Notes :Writing:")
	require.False(t, ok)
}
