package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/abdul-hamid-achik/bcurl/packages/batch"
	"github.com/abdul-hamid-achik/bcurl/packages/core/config"
	"github.com/abdul-hamid-achik/bcurl/packages/executor"
	"github.com/abdul-hamid-achik/bcurl/packages/history"
	"github.com/abdul-hamid-achik/bcurl/packages/http"
	"github.com/abdul-hamid-achik/bcurl/packages/output"
	"github.com/abdul-hamid-achik/bcurl/packages/schema"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bcurl [flags] <url>...",
	Short: "A minimal curl. Fetch URLs, nothing else.",
	Long: `bcurl issues HTTP requests from the command line with curl-style
flags. Give it one URL or many; with several URLs it runs them in
sequence, or all at once with --parallel, and keeps the output in the
order you gave them.

Examples:
  bcurl https://api.example.com/users
  bcurl -X POST -H "Content-Type: application/json" -d '{"name":"ana"}' https://api.example.com/users
  bcurl -I https://example.com
  bcurl -Z https://a.example.com https://b.example.com https://c.example.com
  bcurl --batch urls.txt --summary
  bcurl --query user.email https://api.example.com/me`,
	Args: cobra.ArbitraryArgs,
	RunE: rootCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	// Request flags
	methodFlag        string
	dataFlag          string
	headerFlags       []string
	locationFlag      bool
	maxTimeFlag       string
	maxRedirsFlag     int
	noCompressionFlag bool
	userAgentFlag     string
	insecureFlag      bool

	// Output flags
	outputFileFlag string
	includeFlag    bool
	headFlag       bool
	verboseFlag    bool
	silentFlag     bool
	noColorFlag    bool
	queryFlag      string
	summaryFlag    bool

	// Batch flags
	batchFlag    string
	parallelFlag bool
	rateFlag     float64
	watchFlag    bool

	// Validation and history flags
	schemaFlag string
	recordFlag string

	configFlag string
)

func init() {
	// Request flags
	rootCmd.Flags().StringVarP(&methodFlag, "request", "X", "GET", "HTTP method to use")
	rootCmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Request body")
	rootCmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, "Request header as \"Name: Value\" (repeatable)")
	rootCmd.Flags().BoolVarP(&locationFlag, "location", "L", true, "Follow redirects")
	rootCmd.Flags().StringVarP(&maxTimeFlag, "max-time", "m", getEnvString("BCURL_TIMEOUT", "30s"), "Request timeout (e.g., 30s, 1m) (env: BCURL_TIMEOUT)")
	rootCmd.Flags().IntVar(&maxRedirsFlag, "max-redirs", 10, "Maximum number of redirects to follow")
	rootCmd.Flags().BoolVar(&noCompressionFlag, "no-compression", false, "Disable response compression")
	rootCmd.Flags().StringVarP(&userAgentFlag, "user-agent", "A", getEnvString("BCURL_USER_AGENT", ""), "User-Agent header (env: BCURL_USER_AGENT)")
	rootCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("BCURL_INSECURE", false), "Disable SSL certificate validation (env: BCURL_INSECURE)")

	// Output flags
	rootCmd.Flags().StringVarP(&outputFileFlag, "output", "o", "", "Write response body to file (single URL only)")
	rootCmd.Flags().BoolVarP(&includeFlag, "include", "i", false, "Include response headers in the output")
	rootCmd.Flags().BoolVarP(&headFlag, "head", "I", false, "Fetch headers only (HEAD request)")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print request and response lines to stderr")
	rootCmd.Flags().BoolVarP(&silentFlag, "silent", "s", false, "Suppress error messages")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("BCURL_NO_COLOR", false), "Disable colored output (env: BCURL_NO_COLOR)")
	rootCmd.Flags().StringVar(&queryFlag, "query", "", "Print only the JSON value at this path (e.g., user.email)")
	rootCmd.Flags().BoolVar(&summaryFlag, "summary", false, "Print batch totals and latency percentiles")

	// Batch flags
	rootCmd.Flags().StringVar(&batchFlag, "batch", "", "Read URLs from file, one per line")
	rootCmd.Flags().BoolVarP(&parallelFlag, "parallel", "Z", getEnvBool("BCURL_PARALLEL", false), "Request all URLs concurrently (env: BCURL_PARALLEL)")
	rootCmd.Flags().Float64Var(&rateFlag, "rate", 0, "Maximum request starts per second (0 = unlimited)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the batch file and re-run on change (requires --batch)")

	// Validation and history flags
	rootCmd.Flags().StringVar(&schemaFlag, "schema", "", "Validate JSON response bodies against this JSON Schema file")
	rootCmd.Flags().StringVar(&recordFlag, "record", "", "Append request history to this SQLite database")

	rootCmd.Flags().StringVar(&configFlag, "config", getEnvString("BCURL_CONFIG", ""), "Path to config file (env: BCURL_CONFIG)")

	rootCmd.AddCommand(versionCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func rootCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	urls, err := collectURLs(args)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		cmd.SilenceUsage = false
		return fmt.Errorf("no URLs given")
	}
	if watchFlag && batchFlag == "" {
		cmd.SilenceUsage = false
		return fmt.Errorf("--watch requires --batch")
	}

	settings, err := buildSettings(cmd, fileConfig)
	if err != nil {
		return err
	}

	client := buildClient(cmd, fileConfig)
	printer := buildPrinter(fileConfig, settings, len(urls) == 1)

	execOpts := []executor.Option{executor.WithDiagWriter(cmd.ErrOrStderr())}
	if schemaFlag != "" {
		validator, err := schema.NewValidator(schemaFlag)
		if err != nil {
			return err
		}
		execOpts = append(execOpts, executor.WithValidator(validator))
	}

	runOnce := func(urls []string) (*executor.BatchResult, error) {
		exec := executor.New(client, *settings, printer, execOpts...)
		result := exec.Run(context.Background(), urls)

		if recordFlag != "" {
			if err := recordHistory(string(settings.Method), result); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
		}
		if summaryFlag {
			printer.Summary(result)
		}
		return result, nil
	}

	result, err := runOnce(urls)
	if err != nil {
		return err
	}

	if !watchFlag {
		if !result.Success {
			os.Exit(ExitRequestFailure)
		}
		return nil
	}
	return watchBatchFile(cmd, args, runOnce)
}

// collectURLs merges positional URLs with the batch file, positionals
// first.
func collectURLs(args []string) ([]string, error) {
	urls := append([]string(nil), args...)
	if batchFlag != "" {
		fromFile, err := batch.ReadURLFile(batchFlag)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	return urls, nil
}

// buildSettings resolves the effective request settings: defaults, then
// config file values, then explicit flags.
func buildSettings(cmd *cobra.Command, fileConfig *config.Config) (*executor.Settings, error) {
	method, err := http.ParseMethod(methodFlag)
	if err != nil {
		cmd.SilenceUsage = false
		return nil, err
	}
	if headFlag {
		method = http.MethodHead
	}

	timeoutStr := maxTimeFlag
	if !cmd.Flags().Changed("max-time") && fileConfig.Timeout != "" {
		timeoutStr = fileConfig.Timeout
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		cmd.SilenceUsage = false
		return nil, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutStr, err)
	}

	headers, err := collectHeaders(fileConfig)
	if err != nil {
		cmd.SilenceUsage = false
		return nil, err
	}

	followRedirects := locationFlag
	if !cmd.Flags().Changed("location") {
		followRedirects = fileConfig.GetFollowRedirects()
	}

	compression := !noCompressionFlag
	if !cmd.Flags().Changed("no-compression") {
		compression = fileConfig.GetCompression()
	}

	parallel := parallelFlag
	if !cmd.Flags().Changed("parallel") && !parallel {
		parallel = fileConfig.GetParallel()
	}

	rate := rateFlag
	if !cmd.Flags().Changed("rate") && fileConfig.Rate > 0 {
		rate = fileConfig.Rate
	}

	return &executor.Settings{
		Method:          method,
		Headers:         headers,
		Body:            dataFlag,
		Timeout:         timeout,
		FollowRedirects: followRedirects,
		Compression:     compression,
		Verbose:         verboseFlag,
		IncludeHeaders:  includeFlag || headFlag,
		OutputFile:      outputFileFlag,
		Parallel:        parallel,
		Rate:            rate,
	}, nil
}

// collectHeaders combines config-file default headers (sorted by name for
// a stable order) with -H flags. Flag headers come last so they win for
// servers that take the final value.
func collectHeaders(fileConfig *config.Config) ([]http.Header, error) {
	var headers []http.Header

	names := make([]string, 0, len(fileConfig.Headers))
	for name := range fileConfig.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		headers = append(headers, http.Header{Name: name, Value: fileConfig.Headers[name]})
	}

	for _, raw := range headerFlags {
		h, err := http.ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, nil
}

func buildClient(cmd *cobra.Command, fileConfig *config.Config) *http.Client {
	userAgent := userAgentFlag
	if userAgent == "" {
		userAgent = fileConfig.UserAgent
	}
	if userAgent == "" {
		userAgent = "bcurl/" + version
	}

	maxRedirects := maxRedirsFlag
	if !cmd.Flags().Changed("max-redirs") && fileConfig.MaxRedirects > 0 {
		maxRedirects = fileConfig.MaxRedirects
	}

	validateSSL := fileConfig.GetValidateSSL()
	if insecureFlag {
		validateSSL = false
	}

	return http.NewClient(
		http.WithDiagWriter(cmd.ErrOrStderr()),
		http.WithUserAgent(userAgent),
		http.WithMaxRedirects(maxRedirects),
		http.WithValidateSSL(validateSSL),
	)
}

func buildPrinter(fileConfig *config.Config, settings *executor.Settings, single bool) *output.Printer {
	// The output file captures the body for a single URL, so stdout
	// skips it.
	bodyToFile := settings.OutputFile != "" && single

	return output.NewPrinter(
		output.WithSilent(silentFlag),
		output.WithNoColor(noColorFlag || fileConfig.GetNoColor()),
		output.WithHeadOnly(headFlag),
		output.WithIncludeHeaders(includeFlag),
		output.WithBodyToFile(bodyToFile),
		output.WithQuery(queryFlag),
	)
}

func recordHistory(method string, result *executor.BatchResult) error {
	recorder, err := history.Open(recordFlag)
	if err != nil {
		return err
	}
	defer recorder.Close()
	return recorder.Record(method, result.Outcomes)
}

// watchBatchFile re-runs the batch whenever its URL file is written,
// re-reading the file each time so edits take effect.
func watchBatchFile(cmd *cobra.Command, args []string, runOnce func([]string) (*executor.BatchResult, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch on the file itself.
	if err := watcher.Add(filepath.Dir(batchFlag)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", batchFlag, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", batchFlag)

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(batchFlag) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running...\n\n", batchFlag)

				urls, err := collectURLs(args)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					return
				}
				if _, err := runOnce(urls); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", batchFlag)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
