package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyrocat101/icumsgfmt/parser"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an ICU MessageFormat pattern and print its AST as JSON",
		Long:  "Parse an ICU MessageFormat pattern read from a file or stdin and print its AST as JSON. Exits non-zero and prints the failing span on a parse error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}

			message, err := readMessage(args)
			if err != nil {
				return err
			}

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}

			ast, err := parser.New(message, cfg.ParserOptions()).Parse()
			if err != nil {
				var perr *parser.Error
				if errors.As(err, &perr) {
					log.WithFields(map[string]interface{}{
						"kind":   perr.Kind,
						"offset": perr.Span.Start.Offset,
						"line":   perr.Span.Start.Line,
						"column": perr.Span.Start.Column,
					}).Error("failed to parse message")
				}
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(ast)
		},
	}
)

func readMessage(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
