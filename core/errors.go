package core

import (
	"errors"
	"fmt"
)

// Stage names the orchestration step a hard failure belongs to.
type Stage string

const (
	StageNovelInfo   Stage = "novel-info"
	StageChapterList Stage = "chapter-list"
	StageChapter     Stage = "chapter"
)

// Sentinel errors for errors.Is checks.
var (
	ErrFetch = errors.New("fetch failed")
	ErrParse = errors.New("parse failed")
)

// FetchError reports a network or HTTP failure. It is never masked.
type FetchError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetching %s: %v", e.Stage, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ParseError reports a document that could not be parsed.
type ParseError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parsing %s: %v", e.Stage, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
