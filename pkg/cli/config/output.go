package config

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Output holds the output format of one-shot commands
type Output struct {
	Format string
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text, json)",
			Value:       OutputText,
			Sources:     cli.EnvVars("SIRSE_OUTPUT_FORMAT"),
			Destination: &o.Format,
		},
	}
}

// Validate checks the format
func (o *Output) Validate() error {
	if o.Format != OutputText && o.Format != OutputJSON {
		return goerr.New("unknown output format", goerr.V("format", o.Format))
	}
	return nil
}

// IsJSON returns true when JSON output is selected
func (o *Output) IsJSON() bool {
	return o.Format == OutputJSON
}

// WriteJSON writes v as indented JSON
func (o *Output) WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write JSON output")
	}
	return nil
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(slog.String("format", o.Format))
}
