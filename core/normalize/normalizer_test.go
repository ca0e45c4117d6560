package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeepsLineBreaks(t *testing.T) {
	out, err := New().Normalize(`<div id="novel_ex">第一行<br />第二行<br/>第三行</div>`)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines, "第一行")
	assert.Contains(t, lines, "第二行")
	assert.Contains(t, lines, "第三行")
}

func TestNormalizeTrimsAndCollapses(t *testing.T) {
	out, err := New().Normalize(`<div><p>one</p><p></p><p></p><p>two</p></div>`)
	require.NoError(t, err)

	assert.NotContains(t, out, "\n\n\n")
	assert.True(t, strings.HasPrefix(out, "one"))
	assert.True(t, strings.HasSuffix(out, "two"))
}

func TestNormalizeUndoesPunctuationEscapes(t *testing.T) {
	out, err := New().Normalize(`<p>*注意* 1. 本作は_フィクション_です</p>`)
	require.NoError(t, err)
	assert.NotContains(t, out, `\*`)
	assert.NotContains(t, out, `\_`)
	assert.Contains(t, out, "注意")
}

func TestNormalizeDecodesEntities(t *testing.T) {
	out, err := New().Normalize(`&lt;R15&gt; 注意<br>A &amp; B`)
	require.NoError(t, err)
	assert.Equal(t, "<R15> 注意\nA & B", out)
}

func TestNormalizeKeepsInteriorSpaces(t *testing.T) {
	out, err := New().Normalize("<div>\n    <p>spaced    words</p>\n</div>")
	require.NoError(t, err)
	assert.Equal(t, "spaced    words", out)
}

func TestKeepSpaceRunsLeavesMarkup(t *testing.T) {
	in := `<a  href="x">a  b</a>`
	assert.Equal(t, "<a  href=\"x\">a  b</a>", keepSpaceRuns(in))
	assert.Equal(t, "plain", keepSpaceRuns("plain"))
}
