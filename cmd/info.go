package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/novelpipe/core"
)

const defaultListLimit = 10

func newInfoCmd(root *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "info <novel>",
		Short: "Show a novel's details and chapter list",
		Example: `  novelpipe info https://ncode.syosetu.com/n1234ab/
  novelpipe info n1234ab --site ncode --limit 0
  novelpipe info 12345 --site hameln --translation --target-lang en`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, novelID, err := resolveNovel(args[0], root.site)
			if err != nil {
				return err
			}
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			s, err := a.scraper(ctx, site)
			if err != nil {
				return err
			}
			info, chapters, err := s.Index(ctx, novelID)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), info, chapters, limit)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Chapters to list (0 lists all)")
	return cmd
}

// printInfo writes the novel details followed by up to limit chapters.
func printInfo(w io.Writer, info core.NovelInfo, chapters []core.ChapterRef, limit int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		lines := strings.Split(value, "\n")
		fmt.Fprintf(tw, "%s\t%s\n", label, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(tw, "\t%s\n", line)
		}
	}

	row("Title", info.Title)
	row("Author", info.Author)
	row("URL", info.URL)
	for _, e := range info.Metadata.Entries() {
		value := e.Value
		if e.IsList {
			value = strings.Join(e.Values, ", ")
		}
		row(labelFor(e.Key), value)
	}
	row("Description", info.Description)
	row("Chapters", fmt.Sprint(len(chapters)))
	tw.Flush()

	if len(chapters) == 0 {
		return
	}
	fmt.Fprintln(w)
	shown := chapters
	if limit > 0 && len(chapters) > limit {
		shown = chapters[:limit]
	}
	arc := ""
	for _, ch := range shown {
		if ch.Arc != arc {
			arc = ch.Arc
			if arc != "" {
				fmt.Fprintf(w, "[%s]\n", arc)
			}
		}
		fmt.Fprintf(w, "%4d. %s\n", ch.Index, ch.Title)
	}
	if len(shown) < len(chapters) {
		fmt.Fprintf(w, "      ... and %d more\n", len(chapters)-len(shown))
	}
}

// labelFor turns a metadata key such as age_restricted into "Age restricted".
func labelFor(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
