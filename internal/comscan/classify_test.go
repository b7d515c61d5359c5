package comscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_AllRows(t *testing.T) {
	cases := []struct {
		name   string
		progID string
		desc   string
		want   Usability
	}{
		{"progid and description", "Excel.Application", "Microsoft Excel", UsabilityHigh},
		{"progid only", "Excel.Application", "", UsabilityMedium},
		{"description only", "", "Microsoft Excel", UsabilityLow},
		{"neither", "", "", UsabilityVeryLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := Entry{CLSID: "{00024500-0000-0000-C000-000000000046}", ProgID: tc.progID, Description: tc.desc}
			require.Equal(t, tc.want, Classify(e))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	e := Entry{CLSID: "{00024500-0000-0000-C000-000000000046}", ProgID: "Excel.Application"}
	require.Equal(t, Classify(e), Classify(e))
}

func TestUsability_Strings(t *testing.T) {
	require.Equal(t, "High", UsabilityHigh.String())
	require.Equal(t, "Medium", UsabilityMedium.String())
	require.Equal(t, "Low", UsabilityLow.String())
	require.Equal(t, "Very Low", UsabilityVeryLow.String())

	require.Equal(t, "has ProgID and description", UsabilityHigh.Detail())
	require.Equal(t, "no ProgID or description", UsabilityVeryLow.Detail())
}
