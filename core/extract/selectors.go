package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// selectors is an ordered list of alternatives: the first one that matches
// wins. Sites that moved to new markup list the legacy selector first.
type selectors []cascadia.Selector

func compile(alternatives ...string) selectors {
	out := make(selectors, len(alternatives))
	for i, a := range alternatives {
		out[i] = cascadia.MustCompile(a)
	}
	return out
}

// first returns the first element matched by the earliest matching alternative.
func (s selectors) first(root *goquery.Selection) *goquery.Selection {
	for _, m := range s {
		if found := root.FindMatcher(m); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

// all returns every element matched by the earliest matching alternative.
func (s selectors) all(root *goquery.Selection) *goquery.Selection {
	for _, m := range s {
		if found := root.FindMatcher(m); found.Length() > 0 {
			return found
		}
	}
	return root.Slice(0, 0)
}

// syosetuLayout is the selector table of the ncode family of sites.
type syosetuLayout struct {
	title        selectors
	author       selectors
	description  selectors
	genre        selectors
	keywords     selectors
	ageNotice    selectors
	chapterRows  selectors
	chapterLink  selectors
	chapterTitle selectors
	body         selectors
}

// modernBody excludes the preface and afterword blocks of the new chapter markup.
const modernBody = ".p-novel__body .p-novel__text:not(.p-novel__text--preface):not(.p-novel__text--afterword)"

var desktopLayout = syosetuLayout{
	title:        compile(".novel_title", ".p-novel__title"),
	author:       compile(".novel_writername", ".p-novel__author"),
	description:  compile("#novel_ex", ".p-novel__summary"),
	genre:        compile(".novel_genre"),
	keywords:     compile(".keyword a"),
	ageNotice:    compile(".contents1"),
	chapterRows:  compile(".novel_sublist2", ".p-eplist__sublist"),
	chapterLink:  compile("a"),
	chapterTitle: compile(".novel_subtitle", ".p-novel__title--rensai"),
	body:         compile("#novel_honbun", modernBody),
}

var mobileLayout = syosetuLayout{
	title:        compile("h1"),
	author:       compile(".novel_writername"),
	description:  compile(".novel_introduction"),
	chapterRows:  compile(".chapter_title"),
	chapterLink:  compile("a"),
	chapterTitle: compile("h1"),
	body:         compile(".novel_content"),
}

// hamelnLayout is the selector table of syosetu.org.
var hamelnLayout = struct {
	title        selectors
	author       selectors
	description  selectors
	tags         selectors
	tables       selectors
	arcHeader    selectors
	chapterRows  selectors
	link         selectors
	date         selectors
	chapterTitle selectors
	body         selectors
}{
	title:        compile(`span[itemprop="name"]`),
	author:       compile(`span[itemprop="author"]`),
	description:  compile(`div#maind .ss:nth-of-type(2)`),
	tags:         compile(`span[itemprop="keywords"]`),
	tables:       compile(`div.ss table`),
	arcHeader:    compile(`tr td strong`),
	chapterRows:  compile(`tr.bgcolor2, tr.bgcolor3`),
	link:         compile(`a`),
	date:         compile(`time`),
	chapterTitle: compile(`p span[style="font-size:120%"] a`, `span[style="font-size:120%"]`),
	body:         compile(`#novel_content`, `#honbun`),
}
