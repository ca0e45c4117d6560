package core

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataKeepsFirstSeenOrder(t *testing.T) {
	var m Metadata
	m.Set("genre", "fantasy")
	m.SetList("keywords", []string{"magic", "isekai"})
	m.Set("genre", "romance")

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "genre", entries[0].Key)
	assert.Equal(t, "romance", entries[0].Value)
	assert.Equal(t, "keywords", entries[1].Key)
	assert.Equal(t, []string{"magic", "isekai"}, entries[1].Values)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"genre":"romance","keywords":["magic","isekai"]}`, string(data))
	assert.Equal(t, `{"genre":"romance","keywords":["magic","isekai"]}`, string(data))
}

func TestMetadataSetListCopies(t *testing.T) {
	src := []string{"a", "b"}
	var m Metadata
	m.SetList("tags", src)
	src[0] = "changed"

	e, ok := m.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, e.Values)
}

func TestEmptyMetadataMarshalsToObject(t *testing.T) {
	data, err := json.Marshal(NovelInfo{Title: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metadata":{}`)
}

func TestErrorTaxonomy(t *testing.T) {
	fetchErr := &FetchError{Stage: StageChapter, URL: "https://x/1", Err: io.ErrUnexpectedEOF}
	assert.True(t, errors.Is(fetchErr, ErrFetch))
	assert.False(t, errors.Is(fetchErr, ErrParse))
	assert.True(t, errors.Is(fetchErr, io.ErrUnexpectedEOF))

	parseErr := &ParseError{Stage: StageNovelInfo, URL: "https://x/", Err: io.EOF}
	assert.True(t, errors.Is(parseErr, ErrParse))
	assert.Contains(t, parseErr.Error(), "novel-info")
}

func TestChapterRange(t *testing.T) {
	r := ChapterRange{Start: 2, End: 4}
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
	assert.True(t, InRange(nil, 99))
	assert.Equal(t, "2-4", r.String())
}
