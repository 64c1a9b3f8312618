package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyrocat101/icumsgfmt/parser"
)

var strict bool

var (
	checkCmd = &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse every given message file and report all failures",
		Long:  "Parse each given file independently, continuing past failures, and print one diagnostic per bad file. Exits non-zero if any file failed to parse.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New("check requires at least one file")
			}

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			opts := cfg.ParserOptions()

			failures := 0
			warnings := 0
			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					failures++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file, err)
					continue
				}

				msg, err := parser.New(string(data), opts).Parse()
				if err != nil {
					failures++
					var perr *parser.Error
					if errors.As(err, &perr) {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s: %s\n",
							file, perr.Span.Start.Line, perr.Span.Start.Column, perr.Kind, err)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file, err)
					}
					continue
				}

				if strict && len(cfg.Locales) > 0 {
					for _, w := range checkSelectors(msg) {
						warnings++
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: offset %d: selector %q on %q is not an identifier or \"=N\" form (checked against locales %v)\n",
							file, w.Offset, w.Selector, w.Name, canonicalLocales(cfg.Locales))
					}
				}
			}

			log.WithFields(map[string]interface{}{
				"files":    len(args),
				"failures": failures,
				"warnings": warnings,
			}).Info("check complete")

			if failures > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failures, len(args))
			}
			return nil
		},
	}
)

func init() {
	checkCmd.Flags().BoolVar(&strict, "strict", false, "also flag plural/select selectors that aren't identifiers or \"=N\" forms, against configured locales")
	rootCmd.AddCommand(checkCmd)
}
