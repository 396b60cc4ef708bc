package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/bcurl/packages/http"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Settings is the CLI-level request description shared by every URL in a
// batch. It is passed in explicitly; no global state survives a run.
type Settings struct {
	Method          http.Method
	Headers         []http.Header
	Body            string
	Timeout         time.Duration
	FollowRedirects bool
	Compression     bool
	Verbose         bool
	IncludeHeaders  bool
	OutputFile      string
	Parallel        bool

	// Rate caps request starts per second in both modes. Zero means
	// unlimited. It gates launch rate only, never fan-out width.
	Rate float64
}

// Outcome is the result of one URL's execution, tagged with its original
// position so parallel results can be restored to input order.
type Outcome struct {
	Index        int
	URL          string
	ID           string
	Response     *http.Response
	SchemaErrors []string
	Err          error
	Elapsed      time.Duration
}

// OK reports whether this outcome counts toward aggregate success: no
// error, a 2xx response, and no schema violations.
func (o *Outcome) OK() bool {
	return o.Err == nil && o.Response != nil && o.Response.IsSuccess() && len(o.SchemaErrors) == 0
}

// BatchResult aggregates a whole run. Success is true iff every outcome
// is OK; any transport error, non-2xx status or schema violation flips it
// false without stopping the remaining URLs.
type BatchResult struct {
	Outcomes []Outcome
	Success  bool
	Elapsed  time.Duration
}

// Presenter receives each outcome as soon as it is final: immediately in
// sequential mode, after the join-and-sort barrier in parallel mode.
type Presenter interface {
	Outcome(o *Outcome, labeled bool)
}

// Validator checks a response body and returns violation messages.
type Validator interface {
	Validate(body []byte) []string
}

type Executor struct {
	client    *http.Client
	settings  Settings
	presenter Presenter
	validator Validator
	limiter   *rate.Limiter
	diag      io.Writer
}

type Option func(*Executor)

// WithValidator attaches a response body validator whose violations count
// as per-URL failures.
func WithValidator(v Validator) Option {
	return func(e *Executor) {
		e.validator = v
	}
}

// WithDiagWriter sets the destination for the executor's own verbose
// dispatch lines.
func WithDiagWriter(w io.Writer) Option {
	return func(e *Executor) {
		e.diag = w
	}
}

func New(client *http.Client, settings Settings, presenter Presenter, opts ...Option) *Executor {
	e := &Executor{
		client:    client,
		settings:  settings,
		presenter: presenter,
		diag:      os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	if settings.Rate > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(settings.Rate), 1)
	}
	return e
}

// Run executes all URLs and returns the ordered outcomes with the batch
// wall-clock time.
func (e *Executor) Run(ctx context.Context, urls []string) *BatchResult {
	start := time.Now()

	var outcomes []Outcome
	if e.settings.Parallel {
		outcomes = e.runParallel(ctx, urls)
	} else {
		outcomes = e.runSequential(ctx, urls)
	}

	result := &BatchResult{
		Outcomes: outcomes,
		Success:  true,
		Elapsed:  time.Since(start),
	}
	for i := range outcomes {
		if !outcomes[i].OK() {
			result.Success = false
			break
		}
	}
	return result
}

// runSequential processes URLs one at a time on the shared client,
// presenting each outcome fully before the next URL begins.
func (e *Executor) runSequential(ctx context.Context, urls []string) []Outcome {
	single := len(urls) == 1
	outcomes := make([]Outcome, 0, len(urls))

	for i, url := range urls {
		o := e.executeOne(ctx, i, url, single)
		if e.presenter != nil {
			e.presenter.Outcome(&o, !single)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// runParallel fans out one worker per URL, joins them all, sorts outcomes
// back to input order and only then presents them. A panic in one worker
// becomes that URL's error outcome and never cancels its siblings.
func (e *Executor) runParallel(ctx context.Context, urls []string) []Outcome {
	results := make(chan Outcome, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results <- Outcome{
						Index: idx,
						URL:   target,
						Err:   fmt.Errorf("worker panic: %v", r),
					}
				}
			}()
			results <- e.executeOne(ctx, idx, target, false)
		}(i, url)
	}

	wg.Wait()
	close(results)

	outcomes := make([]Outcome, 0, len(urls))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Index < outcomes[j].Index
	})

	if e.presenter != nil {
		for i := range outcomes {
			e.presenter.Outcome(&outcomes[i], true)
		}
	}
	return outcomes
}

// executeOne performs a single URL's round trip against the shared client
// and captures its elapsed time. Each call builds its own config from the
// shared settings, so workers never share mutable state.
func (e *Executor) executeOne(ctx context.Context, index int, url string, single bool) Outcome {
	o := Outcome{
		Index: index,
		URL:   url,
		ID:    shortID(),
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			o.Err = &http.TransportError{URL: url, Err: err}
			return o
		}
	}

	if e.settings.Verbose && e.settings.Parallel {
		fmt.Fprintf(e.diag, "* [%s] dispatch %s %s\n", o.ID, e.settings.Method, url)
	}

	cfg := e.buildConfig(url, single)
	start := time.Now()
	resp, err := e.client.Execute(cfg)
	o.Elapsed = time.Since(start)

	if err != nil {
		o.Err = err
		return o
	}
	o.Response = resp

	if e.validator != nil && cfg.Method != http.MethodHead {
		o.SchemaErrors = e.validator.Validate(resp.Body)
	}
	return o
}

// buildConfig derives the per-URL config from the shared settings. The
// output file is honored only for a single-URL batch; with several URLs a
// shared destination would overwrite itself per URL.
func (e *Executor) buildConfig(url string, single bool) *http.RequestConfig {
	cfg := http.NewRequestConfig(url).
		SetMethod(e.settings.Method).
		SetTimeout(e.settings.Timeout).
		SetFollowRedirects(e.settings.FollowRedirects).
		SetCompression(e.settings.Compression).
		SetVerbose(e.settings.Verbose).
		SetIncludeHeaders(e.settings.IncludeHeaders)

	for _, h := range e.settings.Headers {
		cfg.AddHeader(h.Name, h.Value)
	}
	if e.settings.Body != "" {
		cfg.SetBody(e.settings.Body)
	}
	if single && e.settings.OutputFile != "" {
		cfg.SetOutputFile(e.settings.OutputFile)
	}
	return cfg
}

// shortID returns a compact request id for correlating diagnostic lines
// and history rows.
func shortID() string {
	return uuid.New().String()[:8]
}
