package comscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const clsidA = "{AAAAAAAA-0000-0000-C000-000000000046}"
const clsidB = "{BBBBBBBB-0000-0000-C000-000000000046}"

func TestMerge_ComplementaryFieldsCombine(t *testing.T) {
	// view32 knows the description, view64 knows the ProgID.
	r32 := &ScanResult{View: View32, Entries: []Entry{
		{CLSID: clsidA, Description: "Foo", Views: NewViewSet(View32)},
	}}
	r64 := &ScanResult{View: View64, Entries: []Entry{
		{CLSID: clsidA, ProgID: "Foo.App", Views: NewViewSet(View64)},
	}}

	catalog := Merge([]*ScanResult{r32, r64})
	require.Equal(t, 1, catalog.Len())

	merged, ok := catalog.Get(clsidA)
	require.True(t, ok)
	require.Equal(t, "Foo.App", merged.ProgID)
	require.Equal(t, "Foo", merged.Description)
	require.True(t, merged.Views.Has(View32))
	require.True(t, merged.Views.Has(View64))
	require.Equal(t, UsabilityHigh, Classify(merged))
}

func TestMerge_ConflictFirstRequestedViewWins(t *testing.T) {
	r32 := &ScanResult{View: View32, Entries: []Entry{
		{CLSID: clsidA, ProgID: "First.App", Description: "first", Views: NewViewSet(View32)},
	}}
	r64 := &ScanResult{View: View64, Entries: []Entry{
		{CLSID: clsidA, ProgID: "Second.App", Description: "second", Views: NewViewSet(View64)},
	}}

	forward, _ := Merge([]*ScanResult{r32, r64}).Get(clsidA)
	require.Equal(t, "First.App", forward.ProgID)
	require.Equal(t, "first", forward.Description)

	reverse, _ := Merge([]*ScanResult{r64, r32}).Get(clsidA)
	require.Equal(t, "Second.App", reverse.ProgID)
	require.Equal(t, "second", reverse.Description)

	// Which value wins flips with view order; view accumulation never does.
	require.Equal(t, forward.Views, reverse.Views)
}

func TestMerge_Idempotent(t *testing.T) {
	res := &ScanResult{View: View64, Entries: []Entry{
		{CLSID: clsidA, ProgID: "Foo.App", Views: NewViewSet(View64)},
		{CLSID: clsidB, Description: "bar", Views: NewViewSet(View64)},
	}}

	once := Merge([]*ScanResult{res})
	twice := Merge([]*ScanResult{res, res})

	require.Equal(t, once.Len(), twice.Len())
	require.Equal(t, once.Entries(), twice.Entries())
}

func TestMerge_FirstSeenOrderPreserved(t *testing.T) {
	r32 := &ScanResult{View: View32, Entries: []Entry{
		{CLSID: clsidB, Views: NewViewSet(View32)},
	}}
	r64 := &ScanResult{View: View64, Entries: []Entry{
		{CLSID: clsidA, Views: NewViewSet(View64)},
		{CLSID: clsidB, Views: NewViewSet(View64)},
	}}

	entries := Merge([]*ScanResult{r32, r64}).Entries()
	require.Len(t, entries, 2)
	require.Equal(t, clsidB, entries[0].CLSID)
	require.Equal(t, clsidA, entries[1].CLSID)
}

func TestMerge_NilResultsSkipped(t *testing.T) {
	r64 := &ScanResult{View: View64, Entries: []Entry{
		{CLSID: clsidA, Views: NewViewSet(View64)},
	}}

	catalog := Merge([]*ScanResult{nil, r64})
	require.Equal(t, 1, catalog.Len())
}

func TestMerge_EndToEndAcrossFakeViews(t *testing.T) {
	hive := NewFakeHive()
	hive.Add(View32, clsidA, "", "Foo")
	hive.Add(View64, clsidA, "Foo.App", "")

	r32, err := Scan(context.Background(), hive, View32)
	require.NoError(t, err)
	r64, err := Scan(context.Background(), hive, View64)
	require.NoError(t, err)

	catalog := Merge([]*ScanResult{r32, r64})
	require.Equal(t, 1, catalog.Len())
	merged, _ := catalog.Get(clsidA)
	require.Equal(t, "Foo.App", merged.ProgID)
	require.Equal(t, "Foo", merged.Description)
	require.Equal(t, NewViewSet(View32, View64), merged.Views)
	require.Equal(t, UsabilityHigh, Classify(merged))
}
