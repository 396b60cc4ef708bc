package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/bcurl/packages/executor"
	"github.com/abdul-hamid-achik/bcurl/packages/http"
	"github.com/abdul-hamid-achik/bcurl/packages/query"
	"github.com/fatih/color"
)

// Printer writes outcomes to the terminal. It implements
// executor.Presenter.
type Printer struct {
	out            io.Writer
	errOut         io.Writer
	silent         bool
	noColor        bool
	headOnly       bool
	includeHeaders bool
	bodyToFile     bool
	query          string
}

type PrinterOption func(*Printer)

func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.noColor {
		color.NoColor = true
	}
	return p
}

func WithWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.out = w
	}
}

func WithErrWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.errOut = w
	}
}

// WithSilent suppresses error messages. It never changes aggregate
// success or the exit code.
func WithSilent(s bool) PrinterOption {
	return func(p *Printer) {
		p.silent = s
	}
}

func WithNoColor(nc bool) PrinterOption {
	return func(p *Printer) {
		p.noColor = nc
	}
}

// WithHeadOnly echoes the header block and suppresses the body.
func WithHeadOnly(h bool) PrinterOption {
	return func(p *Printer) {
		p.headOnly = h
	}
}

func WithIncludeHeaders(i bool) PrinterOption {
	return func(p *Printer) {
		p.includeHeaders = i
	}
}

// WithBodyToFile suppresses the body on stdout because an output file
// captured it.
func WithBodyToFile(b bool) PrinterOption {
	return func(p *Printer) {
		p.bodyToFile = b
	}
}

// WithQuery prints only the value at the given gjson path for JSON
// response bodies.
func WithQuery(path string) PrinterOption {
	return func(p *Printer) {
		p.query = path
	}
}

// Outcome renders a single URL's result. When labeled, the section opens
// with the URL so interleaved batch output stays readable.
func (p *Printer) Outcome(o *executor.Outcome, labeled bool) {
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if labeled {
		fmt.Fprintf(p.out, "%s %s %s\n", bold("=>"), o.URL, cyan(fmt.Sprintf("[%s, %dms]", o.ID, o.Elapsed.Milliseconds())))
	}

	if o.Err != nil {
		p.error(renderError(o.Err))
		return
	}

	resp := o.Response
	if p.includeHeaders || p.headOnly {
		fmt.Fprintf(p.out, "HTTP/1.1 %d %s\n", resp.StatusCode, resp.StatusText)
		for _, name := range resp.HeaderNames() {
			fmt.Fprintf(p.out, "%s: %s\n", name, resp.Headers[name])
		}
		fmt.Fprintln(p.out)
	}

	if !p.headOnly && !p.bodyToFile {
		p.printBody(resp)
	}

	for _, msg := range o.SchemaErrors {
		p.error("schema violation: " + msg)
	}
}

func (p *Printer) printBody(resp *http.Response) {
	if p.query != "" {
		if value, ok := query.Extract(resp, p.query); ok {
			fmt.Fprintln(p.out, value)
			return
		}
	}
	fmt.Fprint(p.out, resp.BodyString())
}

// Error reports a failure that happened before or outside request
// execution.
func (p *Printer) Error(err error) {
	p.error(renderError(err))
}

func (p *Printer) error(msg string) {
	if p.silent {
		return
	}
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(p.errOut, "%s %s\n", red("Error:"), msg)
}

// renderError turns the typed error set into user-facing messages; the
// types themselves carry only structured data.
func renderError(err error) string {
	var invalidURL *http.InvalidURLError
	if errors.As(err, &invalidURL) {
		return invalidURL.Error()
	}

	var invalidHeader *http.InvalidHeaderError
	if errors.As(err, &invalidHeader) {
		return invalidHeader.Error()
	}

	var transport *http.TransportError
	if errors.As(err, &transport) {
		if transport.Timeout() {
			return fmt.Sprintf("request to %s timed out", transport.URL)
		}
		return transport.Error()
	}

	var fileWrite *http.FileWriteError
	if errors.As(err, &fileWrite) {
		return fileWrite.Error()
	}

	return err.Error()
}
