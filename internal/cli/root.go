// Package cli implements the cmpctl command line client.
package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/okian/blindcmp/internal/client"
	"github.com/okian/blindcmp/internal/domain/types"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	URL     string
	Timeout time.Duration
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for cmpctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cmpctl",
		Short: "Client for the blind comparison service",
		Long: `cmpctl creates comparisons, submits the second value and reads results
from a running blindcmp server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.URL, "url", "http://localhost:8000", "base URL of the server")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newCreateCommand(opts))
	cmd.AddCommand(newSubmitCommand(opts))
	cmd.AddCommand(newResultCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newRaceCommand(opts))

	return cmd
}

func (o *RootOptions) client() *client.Client {
	return client.New(o.URL, client.WithTimeout(o.Timeout))
}

// emit writes v as JSON, or text as is, depending on the format flag.
func (o *RootOptions) emit(w io.Writer, v any, text string) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// parseValue accepts finite floats. NaN is never a valid value, and JSON
// has no representation for the infinities.
func parseValue(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	if _, err := types.NewNumber(f); err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid value %q: infinities cannot be sent over the JSON API", s)
	}
	return f, nil
}
