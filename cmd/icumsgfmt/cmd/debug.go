package cmd

import (
	"errors"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/pyrocat101/icumsgfmt/parser"
)

var (
	debugCmd = &cobra.Command{
		Use:   "debug [file]",
		Short: "Parse a message and pretty-print its AST for human inspection",
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
				return err
			}

			repr.Println(ast)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(debugCmd)
}
