// Package report renders recovered credentials.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	xterm "github.com/charmbracelet/x/term"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/nhdewitt/wlancreds/internal/credential"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

const (
	defaultWidth = 100
	fixedColumns = 40
	minColumn    = 12
	maxColumn    = 32
	noKey        = "-"
)

// ParseFormat accepts the names above, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, table, json or yaml)", s)
	}
}

// Detect picks a table for terminals and one line per record otherwise.
func Detect(w io.Writer) Format {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatTable
	}
	return FormatText
}

// Width returns the terminal width of w, or a default when w is not a terminal.
func Width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := xterm.GetSize(f.Fd()); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

type Options struct {
	// Width sizes the table columns; zero means defaultWidth.
	Width int
}

// Write renders results to w in the given format.
func Write(w io.Writer, format Format, results []credential.Result, opts Options) error {
	switch format {
	case FormatText:
		return writeText(w, results)
	case FormatTable:
		return writeTable(w, results, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(results))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(results)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeText emits exactly one line per record.
func writeText(w io.Writer, results []credential.Result) error {
	for _, r := range results {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			oneLine(r.Interface), oneLine(r.SSID), oneLine(r.AuthType), oneLine(r.Cipher), oneLine(key(r)))
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, results []credential.Result, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	// Interface and SSID share what is left after the fixed columns.
	col := max(minColumn, min(maxColumn, (width-fixedColumns)/2))

	fmt.Fprintf(w, "[*] %d WiFi profile(s)\n", len(results))
	fmt.Fprintln(w, strings.Repeat("-", width))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INTERFACE\tSSID\tAUTH\tCIPHER\tKEY")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			truncStr(oneLine(r.Interface), col),
			truncStr(oneLine(r.SSID), col),
			truncStr(oneLine(r.AuthType), 15),
			truncStr(oneLine(r.Cipher), 10),
			oneLine(key(r)))
	}
	return tw.Flush()
}

func key(r credential.Result) string {
	if r.Key == nil {
		return noKey
	}
	return *r.Key
}

// oneLine keeps control characters in SSIDs or keys from breaking the
// one-record-per-line layout.
func oneLine(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
}

func truncStr(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// nonNil makes empty output encode as [] instead of null.
func nonNil(results []credential.Result) []credential.Result {
	if results == nil {
		return []credential.Result{}
	}
	return results
}
