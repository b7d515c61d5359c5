package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"comspect/internal/comscan"
)

func TestFromObjects_MapsFields(t *testing.T) {
	e := comscan.Entry{
		CLSID:       "{AAAAAAAA-0000-0000-C000-000000000046}",
		ProgID:      "Foo.App",
		Description: "Foo",
		Views:       comscan.NewViewSet(comscan.View32, comscan.View64),
	}
	dtos := FromObjects([]comscan.Classified{{Entry: e, Level: comscan.Classify(e)}})

	require.Len(t, dtos, 1)
	require.Equal(t, "{AAAAAAAA-0000-0000-C000-000000000046}", dtos[0].CLSID)
	require.Equal(t, "Foo.App", dtos[0].ProgID)
	require.Equal(t, "Foo", dtos[0].Description)
	require.Equal(t, "High", dtos[0].Usability)
	require.Equal(t, []string{"32-bit", "64-bit"}, dtos[0].SourceViews)
}

func TestFormatObjects_OmitsAbsentFields(t *testing.T) {
	e := comscan.Entry{
		CLSID: "{BBBBBBBB-0000-0000-C000-000000000046}",
		Views: comscan.NewViewSet(comscan.View64),
	}

	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatObjects(FromObjects([]comscan.Classified{{Entry: e, Level: comscan.Classify(e)}}))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.NotContains(t, decoded[0], "prog_id")
	require.NotContains(t, decoded[0], "description")
	require.Equal(t, "Very Low", decoded[0]["usability"])
}
