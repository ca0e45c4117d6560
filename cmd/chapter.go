package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChapterCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chapter <novel> <n>",
		Short: "Print one chapter",
		Example: `  novelpipe chapter https://ncode.syosetu.com/n1234ab/ 3
  novelpipe chapter 12345 1 --site hameln --translation`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, novelID, err := resolveNovel(args[0], root.site)
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid chapter number %q", args[1])
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
			chapters, err := s.ChapterList(ctx, novelID)
			if err != nil {
				return err
			}
			if n > len(chapters) {
				return fmt.Errorf("invalid chapter number %d: valid range is 1-%d", n, len(chapters))
			}
			ref := chapters[n-1]

			content, err := s.ChapterContent(ctx, ref.URL, ref.Title)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ref.Arc != "" {
				fmt.Fprintf(out, "[%s]\n", ref.Arc)
			}
			fmt.Fprintf(out, "%s\n\n%s\n", content.Title, content.Content)
			return nil
		},
	}
}
