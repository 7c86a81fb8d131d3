package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/examfetch/internal/httputil"
	"github.com/pdiddy/examfetch/internal/media"
	"github.com/pdiddy/examfetch/internal/report"
	"github.com/pdiddy/examfetch/internal/secrets"
	"github.com/pdiddy/examfetch/internal/wiki"
)

const promptText = "Enter exam name (e.g., NEET, JEE Main, CLAT, UPSC, CUET, SSC CGL): "

var fetchCmd = &cobra.Command{
	Use:   "fetch [exam name...]",
	Short: "Fetch the Wikipedia summary, syllabus, pattern, videos and books for an exam",
	Long: `Fetch looks up an exam on Wikipedia, extracts its summary, syllabus and exam
pattern sections, and suggests preparation videos and books. All arguments
are joined into one exam name; with no arguments the name is read from stdin.

Every lookup is best-effort: a service that fails or has no key simply leaves
its part of the report empty.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Bool("no-videos", false, "skip the YouTube lookup")
	fetchCmd.Flags().Bool("no-books", false, "skip the Google Books lookup")
	fetchCmd.Flags().Int("max-videos", 0, "maximum number of videos (default from config, 6)")
	fetchCmd.Flags().Int("max-books", 0, "maximum number of books (default from config, 6)")
	fetchCmd.Flags().Bool("concurrent", false, "run the three lookups in parallel")
	fetchCmd.Flags().Bool("json", false, "print the report as JSON")
	fetchCmd.Flags().Bool("yaml", false, "print the report as YAML")
	fetchCmd.Flags().String("output", "", "also save the report to a .json, .yaml or .yml file")
	fetchCmd.Flags().String("youtube-api-key", "", "YouTube Data API key")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asJSON && asYAML {
		return eris.New("--json and --yaml are mutually exclusive")
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		q, err := promptQuery(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if q == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "No query entered. Exiting.")
			return nil
		}
		query = q
	}

	ctx := cmd.Context()
	cfg := appConfig

	// Key precedence: flag, config or EXAMFETCH_* env, .secrets/, .env.
	if key, _ := cmd.Flags().GetString("youtube-api-key"); key != "" {
		cfg.Videos.APIKey = key
	}
	cfg.Videos.APIKey = secretDefault(cfg.Videos.APIKey, secrets.YouTubeKeyFile, secrets.YouTubeEnvKey)
	cfg.Books.APIKey = secretDefault(cfg.Books.APIKey, secrets.BooksKeyFile, secrets.BooksEnvKey)

	opts := report.DefaultOptions()
	if cfg.Videos.MaxResults > 0 {
		opts.MaxVideos = cfg.Videos.MaxResults
	}
	if cfg.Books.MaxResults > 0 {
		opts.MaxBooks = cfg.Books.MaxResults
	}
	if n, _ := cmd.Flags().GetInt("max-videos"); n > 0 {
		opts.MaxVideos = n
	}
	if n, _ := cmd.Flags().GetInt("max-books"); n > 0 {
		opts.MaxBooks = n
	}
	noVideos, _ := cmd.Flags().GetBool("no-videos")
	noBooks, _ := cmd.Flags().GetBool("no-books")
	opts.IncludeVideos = !noVideos
	opts.IncludeBooks = !noBooks
	opts.Concurrent, _ = cmd.Flags().GetBool("concurrent")

	hc := httputil.NewClient(cfg.HTTP)
	yt, err := media.NewYouTube(ctx, cfg.Videos, logger)
	if err != nil {
		return err
	}
	books, err := media.NewBooks(ctx, cfg.Books, logger)
	if err != nil {
		return err
	}
	if opts.IncludeVideos && !yt.Enabled() {
		logger.Info("video lookup unavailable", zap.Bool("videos_enabled", cfg.Videos.Enabled))
	}

	agg := &report.Aggregator{
		Wiki:   wiki.NewClient(hc, cfg.Wiki, logger),
		Videos: yt,
		Books:  books,
		Log:    logger,
	}
	rep, err := agg.FetchExamInfo(ctx, query, opts)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		if err := report.WriteFile(out, rep); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", out)
	}

	w := cmd.OutOrStdout()
	switch {
	case asJSON:
		return report.FormatJSON(rep, w)
	case asYAML:
		return report.FormatYAML(rep, w)
	default:
		report.FormatText(rep, w)
		return nil
	}
}

// promptQuery asks for an exam name on out and reads one line from in.
// End of input yields an empty name.
func promptQuery(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Universal Exam Info Fetcher (Wikipedia + YouTube + Google Books)")
	fmt.Fprint(out, promptText)

	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", eris.Wrap(err, "reading exam name")
		}
		return "", nil
	}
	return strings.TrimSpace(sc.Text()), nil
}
