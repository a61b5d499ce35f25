package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/model"
	"github.com/quizmark/quizmark/internal/parser"
	"github.com/quizmark/quizmark/internal/quiz"
)

func lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Validate question documents without serving them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLint,
	}
	f := cmd.Flags()
	f.Bool("strip-raw", true, "Strip templating passthrough markers before parsing")
	f.String("log-level", "warn", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	stripRaw := v.GetBool("strip-raw")

	p := parser.New(markdown.New())
	failed := 0
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		text := string(raw)
		if stripRaw {
			text = quiz.StripRawMarkers(text)
		}
		doc, err := p.Parse(text, path)
		if err != nil {
			failed++
			var cfgErr *model.ConfigurationError
			var typeErr *model.UnrecognizedTypeError
			switch {
			case errors.As(err, &cfgErr):
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: bad %s value %q\n", path, cfgErr.Field, cfgErr.Value)
			case errors.As(err, &typeErr):
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: unrecognized question type %q\n", path, typeErr.Value)
			default:
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", path, doc.Type)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}
