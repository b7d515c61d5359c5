package comscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func catalogFrom(entries ...Entry) *Catalog {
	return Merge([]*ScanResult{{View: View64, Entries: entries}})
}

func officeCatalog() *Catalog {
	return catalogFrom(
		Entry{CLSID: "{00024500-0000-0000-C000-000000000046}", ProgID: "Excel.Application", Description: "Microsoft Excel", Views: NewViewSet(View64)},
		Entry{CLSID: "{000209FF-0000-0000-C000-000000000046}", ProgID: "Word.Application", Description: "Microsoft Word", Views: NewViewSet(View64)},
		Entry{CLSID: "{CCCCCCCC-0000-0000-C000-000000000046}", Description: "Nameless component", Views: NewViewSet(View64)},
		Entry{CLSID: "{DDDDDDDD-0000-0000-C000-000000000046}", Views: NewViewSet(View64)},
	)
}

func TestFilterAndLimit_NoFilterReturnsAllInOrder(t *testing.T) {
	c := officeCatalog()
	got := FilterAndLimit(c, FilterOptions{})
	require.Len(t, got, c.Len())
	for i, e := range c.Entries() {
		require.Equal(t, e.CLSID, got[i].CLSID)
		require.Equal(t, Classify(e), got[i].Level)
	}
}

func TestFilterAndLimit_CaseInsensitiveQuery(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Query: "excel"})
	require.Len(t, got, 1)
	require.Equal(t, "Excel.Application", got[0].ProgID)
}

func TestFilterAndLimit_NoMatchesYieldsEmptyNotError(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Query: "definitely-not-registered"})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterAndLimit_AbsentFieldsNeverMatch(t *testing.T) {
	c := catalogFrom(
		Entry{CLSID: "{DDDDDDDD-0000-0000-C000-000000000046}", Views: NewViewSet(View64)},
	)
	require.Empty(t, FilterAndLimit(c, FilterOptions{Description: "anything"}))
}

func TestFilterAndLimit_QueryMatchesClsid(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Query: "cccccccc"})
	require.Len(t, got, 1)
	require.Equal(t, "{CCCCCCCC-0000-0000-C000-000000000046}", got[0].CLSID)
}

func TestFilterAndLimit_DescriptionFilterOnly(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Description: "microsoft"})
	require.Len(t, got, 2)
}

func TestFilterAndLimit_ClsidFilterOnly(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{CLSID: "000209ff"})
	require.Len(t, got, 1)
	require.Equal(t, "Word.Application", got[0].ProgID)
}

func TestFilterAndLimit_AppKeywordsAnyMatch(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Apps: []string{"word", "excel"}})
	require.Len(t, got, 2)
	require.Equal(t, "Excel.Application", got[0].ProgID)
	require.Equal(t, "Word.Application", got[1].ProgID)
}

func TestFilterAndLimit_FiltersCombineWithAnd(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{
		Query:       "application",
		Description: "word",
	})
	require.Len(t, got, 1)
	require.Equal(t, "Word.Application", got[0].ProgID)
}

func TestFilterAndLimit_LimitZeroMeansUnlimited(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Limit: 0})
	require.Len(t, got, 4)
}

func TestFilterAndLimit_LimitTruncatesInOrder(t *testing.T) {
	c := officeCatalog()
	got := FilterAndLimit(c, FilterOptions{Limit: 2})
	require.Len(t, got, 2)
	require.Equal(t, c.Entries()[0].CLSID, got[0].CLSID)
	require.Equal(t, c.Entries()[1].CLSID, got[1].CLSID)
}

func TestFilterAndLimit_LimitAppliesAfterFilter(t *testing.T) {
	got := FilterAndLimit(officeCatalog(), FilterOptions{Description: "microsoft", Limit: 1})
	require.Len(t, got, 1)
	require.Equal(t, "Excel.Application", got[0].ProgID)
}
