package style

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string           { return &s }
func numPtr(f float64) *float64         { return &f }
func boolPtr(b bool) *bool              { return &b }
func lsPtr(ls LineSpacing) *LineSpacing { return &ls }

func TestLineSpacingJSON(t *testing.T) {
	t.Run("single round trip", func(t *testing.T) {
		data, err := json.Marshal(SingleSpacing())
		require.NoError(t, err)
		assert.Equal(t, `"single"`, string(data))

		var ls LineSpacing
		require.NoError(t, json.Unmarshal(data, &ls))
		assert.True(t, ls.Single)
	})

	t.Run("exact round trip", func(t *testing.T) {
		data, err := json.Marshal(ExactSpacing(28))
		require.NoError(t, err)
		assert.Equal(t, `28`, string(data))

		var ls LineSpacing
		require.NoError(t, json.Unmarshal(data, &ls))
		assert.False(t, ls.Single)
		assert.Equal(t, 28.0, ls.Points)
	})

	t.Run("numeric one collapses to single", func(t *testing.T) {
		var ls LineSpacing
		require.NoError(t, json.Unmarshal([]byte(`1.0`), &ls))
		assert.True(t, ls.Single)
	})

	t.Run("unknown keyword rejected", func(t *testing.T) {
		var ls LineSpacing
		assert.Error(t, json.Unmarshal([]byte(`"double"`), &ls))
	})
}

func TestRuleJSONOmitsAbsentFields(t *testing.T) {
	r := &Rule{
		FontName: strPtr("宋体"),
		FontSize: numPtr(12),
		Bold:     boolPtr(false),
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 3)
	assert.Equal(t, "宋体", raw["font_name"])
	assert.Equal(t, false, raw["bold"])
	assert.NotContains(t, raw, "alignment")
	assert.NotContains(t, raw, "space_before")
}

func TestRuleClone(t *testing.T) {
	orig := &Rule{
		FontName:    strPtr("黑体"),
		FontSize:    numPtr(16),
		Bold:        boolPtr(true),
		Alignment:   strPtr(AlignCenter),
		LineSpacing: lsPtr(ExactSpacing(28)),
		SpaceBefore: numPtr(13),
	}
	clone := orig.Clone()
	require.NotNil(t, clone)

	*clone.FontName = "宋体"
	*clone.FontSize = 12
	*clone.Bold = false
	clone.LineSpacing.Points = 20

	assert.Equal(t, "黑体", *orig.FontName)
	assert.Equal(t, 16.0, *orig.FontSize)
	assert.True(t, *orig.Bold)
	assert.Equal(t, 28.0, orig.LineSpacing.Points)
	assert.Nil(t, (*Rule)(nil).Clone())
}

func TestTemplateResolve(t *testing.T) {
	tpl := &Template{
		Styles: map[string]*Rule{
			"Normal":    {FontName: strPtr("宋体")},
			"Heading 1": {FontName: strPtr("黑体")},
		},
		DefaultStyle: "Normal",
	}

	t.Run("exact match", func(t *testing.T) {
		r, name := tpl.Resolve("Heading 1")
		require.NotNil(t, r)
		assert.Equal(t, "Heading 1", name)
		assert.Equal(t, "黑体", *r.FontName)
	})

	t.Run("fallback to default", func(t *testing.T) {
		r, name := tpl.Resolve("Body Text")
		require.NotNil(t, r)
		assert.Equal(t, "Normal", name)
	})

	t.Run("dangling default", func(t *testing.T) {
		broken := &Template{
			Styles:       map[string]*Rule{"Normal": {}},
			DefaultStyle: "Gone",
		}
		r, name := broken.Resolve("Body Text")
		assert.Nil(t, r)
		assert.Empty(t, name)
	})
}

func TestTemplateJSONRoundTrip(t *testing.T) {
	tpl := &Template{
		Styles: map[string]*Rule{
			"Normal": {
				FontName:        strPtr("宋体"),
				FontSize:        numPtr(12),
				LineSpacing:     lsPtr(SingleSpacing()),
				FirstLineIndent: numPtr(24),
			},
		},
		DefaultStyle: "Normal",
	}

	data, err := tpl.JSON()
	require.NoError(t, err)

	got, err := ParseTemplate(data)
	require.NoError(t, err)
	assert.Equal(t, tpl, got)
	assert.False(t, got.Empty())
}

func TestParseTemplateEmptyObject(t *testing.T) {
	got, err := ParseTemplate([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Styles)
	assert.True(t, got.Empty())
	assert.Nil(t, got.DefaultRule())
}
