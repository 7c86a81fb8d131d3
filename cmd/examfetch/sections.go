package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdiddy/examfetch/internal/sections"
	"github.com/pdiddy/examfetch/pkg/types"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file.html>",
	Short: "Show the sections and classification extracted from a saved page",
	Long: `Sections runs the heading extractor and the syllabus/pattern classifier on a
local HTML file (use "-" for stdin) and prints what they found. It makes no
network calls, which makes it useful for checking why a page was classified
the way it was.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	sectionsCmd.Flags().Bool("json", false, "print the extracted sections as JSON")
	sectionsCmd.Flags().Int("preview", 80, "characters of each section body to show")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	markup, err := readMarkup(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	secs := sections.Extract(markup)
	cls := sections.Classify(secs)
	w := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(secs)
	}

	preview, _ := cmd.Flags().GetInt("preview")
	printSections(w, secs, cls, preview)
	return nil
}

func readMarkup(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", eris.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

func printSections(w io.Writer, secs types.SectionMap, cls sections.Classification, preview int) {
	if secs.Len() == 0 {
		fmt.Fprintln(w, "No sections found.")
	} else {
		fmt.Fprintf(w, "%d sections:\n", secs.Len())
		for _, k := range secs.Keys() {
			body, _ := secs.Get(k)
			fmt.Fprintf(w, " - %-40s %s\n", k, previewText(body, preview))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "summary:  %s\n", presence(cls.Summary != ""))
	fmt.Fprintf(w, "syllabus: %s\n", describeMatch(cls.Syllabus))
	fmt.Fprintf(w, "pattern:  %s\n", describeMatch(cls.Pattern))
}

func describeMatch(m sections.Match) string {
	if !m.Found() {
		return "not found"
	}
	return fmt.Sprintf("%q (%s match)", m.Key, m.Kind)
}

func presence(ok bool) string {
	if ok {
		return "found"
	}
	return "not found"
}

func previewText(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
