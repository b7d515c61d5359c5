package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"comspect/internal/comscan"
	"comspect/internal/config"
)

func setViewFlags(t *testing.T, v32, v64 bool) {
	t.Helper()
	prev32, prev64, prevCfg := scan32, scan64, cfg
	t.Cleanup(func() { scan32, scan64, cfg = prev32, prev64, prevCfg })
	scan32, scan64 = v32, v64
	cfg = config.Defaults()
}

func TestSelectViews_NoFlagsMeansBoth32First(t *testing.T) {
	setViewFlags(t, false, false)
	views, err := selectViews()
	require.NoError(t, err)
	require.Equal(t, []comscan.View{comscan.View32, comscan.View64}, views)
}

func TestSelectViews_SoloFlagSelectsOnlyThatView(t *testing.T) {
	setViewFlags(t, true, false)
	views, err := selectViews()
	require.NoError(t, err)
	require.Equal(t, []comscan.View{comscan.View32}, views)

	setViewFlags(t, false, true)
	views, err = selectViews()
	require.NoError(t, err)
	require.Equal(t, []comscan.View{comscan.View64}, views)
}

func TestSelectViews_BothFlagsSelectBoth(t *testing.T) {
	setViewFlags(t, true, true)
	views, err := selectViews()
	require.NoError(t, err)
	require.Equal(t, []comscan.View{comscan.View32, comscan.View64}, views)
}

func TestSelectViews_ConfigViewsApplyWithoutFlags(t *testing.T) {
	setViewFlags(t, false, false)
	cfg.Views = []string{"64"}
	views, err := selectViews()
	require.NoError(t, err)
	require.Equal(t, []comscan.View{comscan.View64}, views)
}

func TestAnyFilterFlagSet(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{Use: "test"}
		c.Flags().String("filter", "", "")
		c.Flags().String("filter-description", "", "")
		c.Flags().String("filter-clsid", "", "")
		c.Flags().StringSlice("filter-app", nil, "")
		c.Flags().Int("limit", 0, "")
		return c
	}

	c := newCmd()
	require.False(t, anyFilterFlagSet(c))

	c = newCmd()
	require.NoError(t, c.Flags().Set("filter", "excel"))
	require.True(t, anyFilterFlagSet(c))

	c = newCmd()
	require.NoError(t, c.Flags().Set("filter-app", "word,excel"))
	require.True(t, anyFilterFlagSet(c))

	// Non-filter flags never trigger the prompt bypass.
	c = newCmd()
	require.NoError(t, c.Flags().Set("limit", "5"))
	require.False(t, anyFilterFlagSet(c))
}
