package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/novelpipe/core"
	"github.com/gaurav-prasanna/novelpipe/core/output"
	"github.com/gaurav-prasanna/novelpipe/core/render"
	"github.com/gaurav-prasanna/novelpipe/core/scrape"
)

// Flag variables.
type downloadFlags struct {
	chapters    string
	format      string
	includeInfo bool
	quiet       bool
}

func newDownloadCmd(root *rootFlags) *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download <novel>",
		Short: "Download a novel and export it",
		Long: `Download fetches the novel index and the selected chapters, optionally
translates them, and writes a single EPUB, PDF, Markdown or JSON file.

--chapters takes 0 (all), a single chapter N or an inclusive range A-B.`,
		Example: `  novelpipe download https://ncode.syosetu.com/n1234ab/
  novelpipe download n1234ab --chapters 1-10 --format pdf --font ./NotoSansJP.ttf
  novelpipe download 12345 --site hameln --format markdown --output-dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, root, &flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.chapters, "chapters", "0", "Chapters to download: 0 (all), N or A-B")
	f.StringVar(&flags.format, "format", "epub", "Output format: epub, pdf, markdown, json")
	f.BoolVar(&flags.includeInfo, "include-info", true, "Include the novel info page and table of contents")
	f.BoolVar(&flags.quiet, "quiet", false, "Do not print per-chapter progress")
	f.String("output-dir", "", "Output directory (default: ./downloads)")
	f.String("font", "", "TTF font with Japanese glyphs for PDF export")
	return cmd
}

func runDownload(cmd *cobra.Command, root *rootFlags, flags *downloadFlags, novel string) error {
	site, novelID, err := resolveNovel(novel, root.site)
	if err != nil {
		return err
	}
	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}
	defer a.Close()

	language := "ja"
	if a.cfg.Translation.Enabled {
		language = a.cfg.Translation.TargetLanguage
	}
	renderer, err := render.New(flags.format, render.Options{FontPath: a.cfg.Export.FontPath, Language: language})
	if err != nil {
		return err
	}
	writer, err := output.New(a.cfg.Export.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	s, err := a.scraper(ctx, site)
	if err != nil {
		return err
	}

	// 1. Index
	info, chapters, err := s.Index(ctx, novelID)
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters found for %s", info.URL)
	}
	r, err := scrape.ParseRange(flags.chapters, len(chapters))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if r == nil {
		fmt.Fprintf(out, "Downloading all %d chapters of %s...\n", len(chapters), info.Title)
	} else {
		fmt.Fprintf(out, "Downloading chapters %s of %s...\n", r, info.Title)
	}

	// 2. Chapters
	var progress func(scrape.Progress)
	if !flags.quiet {
		progress = progressPrinter(cmd.ErrOrStderr())
	}
	doc, err := s.Download(ctx, info, chapters, r, progress)
	if err != nil {
		return err
	}

	// 3. Render
	data, err := renderer.Render(doc, core.RenderOptions{IncludeInfo: flags.includeInfo, Range: r})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// 4. Write
	path, err := writer.Write(info.Title, r, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Written: %s\n", path)
	return nil
}

func progressPrinter(w io.Writer) func(scrape.Progress) {
	return func(p scrape.Progress) {
		fmt.Fprintf(w, "[%d/%d] %s (elapsed %s, ETA %s)\n",
			p.Done, p.Total, p.Chapter.Title, scrape.FormatClock(p.Elapsed), scrape.FormatClock(p.ETA))
	}
}
