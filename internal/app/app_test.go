package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"comspect/internal/comscan"
)

func newTestPipeline(hive comscan.Hive, ttl time.Duration) *Pipeline {
	return New(hive, noop.NewTracerProvider().Tracer("test"), ttl)
}

const clsidA = "{AAAAAAAA-0000-0000-C000-000000000046}"
const clsidB = "{BBBBBBBB-0000-0000-C000-000000000046}"

func TestRun_MergesBothViews(t *testing.T) {
	hive := comscan.NewFakeHive()
	hive.Add(comscan.View32, clsidA, "", "Foo")
	hive.Add(comscan.View64, clsidA, "Foo.App", "")
	hive.Add(comscan.View64, clsidB, "Bar.App", "Bar")

	p := newTestPipeline(hive, time.Minute)
	result, err := p.Run(context.Background(), Options{
		Views: []comscan.View{comscan.View32, comscan.View64},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalUnique)
	require.Len(t, result.Objects, 2)

	require.Equal(t, clsidA, result.Objects[0].CLSID)
	require.Equal(t, "Foo.App", result.Objects[0].ProgID)
	require.Equal(t, "Foo", result.Objects[0].Description)
	require.Equal(t, comscan.UsabilityHigh, result.Objects[0].Level)

	require.Len(t, result.Stats, 2)
	require.Equal(t, comscan.View32, result.Stats[0].View)
	require.NoError(t, result.Stats[0].Err)
}

func TestRun_OneFailedViewStillProceeds(t *testing.T) {
	hive := comscan.NewFakeHive()
	hive.Add(comscan.View64, clsidA, "Foo.App", "Foo")
	hive.FailRoot(comscan.View32, errors.New("access denied"))

	p := newTestPipeline(hive, time.Minute)
	result, err := p.Run(context.Background(), Options{
		Views: []comscan.View{comscan.View32, comscan.View64},
	})
	require.NoError(t, err)
	require.Len(t, result.Objects, 1)

	require.Error(t, result.Stats[0].Err)
	var viewErr *comscan.ViewError
	require.ErrorAs(t, result.Stats[0].Err, &viewErr)
	require.NoError(t, result.Stats[1].Err)
}

func TestRun_AllViewsFailedIsError(t *testing.T) {
	hive := comscan.NewFakeHive()
	hive.FailRoot(comscan.View32, errors.New("denied 32"))
	hive.FailRoot(comscan.View64, errors.New("denied 64"))

	p := newTestPipeline(hive, time.Minute)
	result, err := p.Run(context.Background(), Options{
		Views: []comscan.View{comscan.View32, comscan.View64},
	})
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrNoViewScanned)
}

func TestRun_NoViewsRequestedIsError(t *testing.T) {
	p := newTestPipeline(comscan.NewFakeHive(), time.Minute)
	_, err := p.Run(context.Background(), Options{})
	require.Error(t, err)
}

func TestRun_FilterAndLimitApplied(t *testing.T) {
	hive := comscan.NewFakeHive()
	hive.Add(comscan.View64, clsidA, "Excel.Application", "Microsoft Excel")
	hive.Add(comscan.View64, clsidB, "Word.Application", "Microsoft Word")

	p := newTestPipeline(hive, time.Minute)
	result, err := p.Run(context.Background(), Options{
		Views:  []comscan.View{comscan.View64},
		Filter: comscan.FilterOptions{Query: "excel"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalUnique)
	require.Len(t, result.Objects, 1)
	require.Equal(t, "Excel.Application", result.Objects[0].ProgID)
}

func TestRun_ReusesCachedScans(t *testing.T) {
	hive := comscan.NewFakeHive()
	hive.Add(comscan.View64, clsidA, "Foo.App", "Foo")

	p := newTestPipeline(hive, time.Minute)
	views := []comscan.View{comscan.View64}

	_, err := p.Run(context.Background(), Options{Views: views})
	require.NoError(t, err)
	_, err = p.Run(context.Background(), Options{Views: views, Filter: comscan.FilterOptions{Query: "foo"}})
	require.NoError(t, err)

	require.Equal(t, 1, hive.OpenCalls[comscan.View64])

	p.FlushCache()
	_, err = p.Run(context.Background(), Options{Views: views})
	require.NoError(t, err)
	require.Equal(t, 2, hive.OpenCalls[comscan.View64])
}

func TestRun_CacheDisabledRescansEveryRun(t *testing.T) {
	hive := comscan.NewFakeHive()
	hive.Add(comscan.View64, clsidA, "Foo.App", "Foo")

	p := newTestPipeline(hive, 0)
	views := []comscan.View{comscan.View64}

	_, err := p.Run(context.Background(), Options{Views: views})
	require.NoError(t, err)
	_, err = p.Run(context.Background(), Options{Views: views})
	require.NoError(t, err)
	require.Equal(t, 2, hive.OpenCalls[comscan.View64])
}
