package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizmark/quizmark/internal/grading"
	appI18n "github.com/quizmark/quizmark/internal/i18n"
	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/model"
	"github.com/quizmark/quizmark/internal/parser"
	"github.com/quizmark/quizmark/internal/quiz"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a quiz interactively in the terminal",
		RunE:  runPlay,
	}
	f := cmd.Flags()
	f.IntP("count", "n", quiz.DefaultCount, "Max questions per set")
	f.StringSliceP("questions", "q", nil, "Question document locations (repeatable)")
	f.StringP("locale", "l", "en", "UI language (en, ru)")
	f.Bool("strip-raw", true, "Strip templating passthrough markers before parsing")
	f.Uint64("seed", 0, "Shuffle seed for reproducible runs (0 = random)")
	f.String("log-level", "warn", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func runPlay(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	locale := v.GetString("locale")
	if err := appI18n.Init(locale, v.GetStringMapString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}
	ctx := appI18n.WithLocalizer(context.Background(), appI18n.NewLocalizer(locale))

	shuffler := quiz.NewShuffler()
	if seed := v.GetUint64("seed"); seed != 0 {
		shuffler = quiz.NewSeededShuffler(seed)
	}

	cfg, err := quizConfig(v)
	if err != nil {
		return err
	}
	fetcher := quiz.SchemeFetcher{
		HTTP: &quiz.HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}},
		File: quiz.FileFetcher{},
	}
	ctrl := quiz.NewController(cfg, fetcher, parser.New(markdown.New()), shuffler)

	docs := ctrl.Run(ctx)
	if len(docs) == 0 {
		fmt.Println(appI18n.T(ctx, "NoQuestions"))
		return nil
	}
	fmt.Println(appI18n.Tp(ctx, "QuestionsLoaded", len(docs)))

	engine := grading.NewEngine()
	in := bufio.NewScanner(os.Stdin)
	var gradedCorrect, gradedTotal int

	for i, doc := range docs {
		fmt.Println()
		fmt.Println(appI18n.Td(ctx, "QuestionHeader", map[string]any{"N": i + 1, "Total": len(docs)}))
		if title := doc.Title(); title != "" {
			fmt.Println(title)
		}
		fmt.Println()

		attempt := grading.NewAttempt(engine, doc)
		switch doc.Type {
		case model.TypeMultipleChoice:
			playMultipleChoice(ctx, in, attempt, shuffler)
		case model.TypeTrueFalse:
			playTrueFalse(ctx, in, attempt)
		case model.TypeFillInBlank:
			playFillInBlank(ctx, in, attempt, shuffler)
		}

		if res := attempt.Result(); res != nil {
			if len(res.Fields) > 0 {
				for _, fv := range res.Fields {
					gradedTotal++
					if fv == grading.Correct {
						gradedCorrect++
					}
				}
			} else {
				gradedTotal++
				if res.Overall == grading.Correct {
					gradedCorrect++
				}
			}
		}

		if md, ok := doc.Explanation(); ok {
			fmt.Println()
			fmt.Println(appI18n.T(ctx, "Explanation") + ":")
			fmt.Println(md)
		}
	}

	fmt.Println()
	fmt.Println(appI18n.Td(ctx, "ScoreLine", map[string]any{"Correct": gradedCorrect, "Total": gradedTotal}))
	return nil
}

func playMultipleChoice(ctx context.Context, in *bufio.Scanner, attempt *grading.Attempt, shuffler *quiz.Shuffler) {
	doc := attempt.Question()
	fmt.Println(doc.Body)
	fmt.Println()

	order := optionOrder(len(doc.MC.Options), doc.MC.Shuffle, shuffler)
	for pos, stored := range order {
		fmt.Printf("  %c) %s\n", letters[pos], doc.MC.Options[stored])
	}

	pos, ok := readLetter(ctx, in, len(order))
	if !ok {
		fmt.Println(appI18n.T(ctx, "NotAttempted"))
		return
	}
	_ = attempt.SelectOption(order[pos] + 1)

	res, err := attempt.Check()
	if err != nil {
		return
	}
	fmt.Println(verdictLabel(ctx, res.Overall))
}

func playTrueFalse(ctx context.Context, in *bufio.Scanner, attempt *grading.Attempt) {
	doc := attempt.Question()
	fmt.Println(doc.Body)
	fmt.Println()
	fmt.Printf("%s [%s/%s]: ", appI18n.T(ctx, "AnswerPrompt"), appI18n.T(ctx, "True"), appI18n.T(ctx, "False"))

	if !in.Scan() {
		return
	}
	input := strings.ToLower(strings.TrimSpace(in.Text()))
	if input == "" {
		fmt.Println(appI18n.T(ctx, "NotAttempted"))
		return
	}
	value := !(strings.HasPrefix(input, "f") || strings.HasPrefix(input, "n") || input == "0")
	_ = attempt.SelectTrueFalse(value)

	res, err := attempt.Check()
	if err != nil {
		return
	}
	fmt.Println(verdictLabel(ctx, res.Overall))
}

func playFillInBlank(ctx context.Context, in *bufio.Scanner, attempt *grading.Attempt, shuffler *quiz.Shuffler) {
	doc := attempt.Question()
	fmt.Println(parser.FieldPlaceholders(doc.Body))
	fmt.Println()

	for i, field := range doc.Fields {
		if field.Kind == model.FieldBlank {
			fmt.Printf("%s: ", appI18n.Td(ctx, "BlankPrompt", map[string]any{"N": i + 1}))
			if !in.Scan() {
				break
			}
			if text := in.Text(); strings.TrimSpace(text) != "" {
				_ = attempt.SetBlank(i, text)
			}
			continue
		}

		order := optionOrder(len(field.Choices), field.Shuffle, shuffler)
		for pos, stored := range order {
			fmt.Printf("  %c) %s\n", letters[pos], field.Choices[stored].Text)
		}
		fmt.Printf("%s: ", appI18n.Td(ctx, "DropdownPrompt", map[string]any{"N": i + 1}))
		if pos, ok := readLetterInput(in, len(order)); ok {
			_ = attempt.SelectChoice(i, order[pos])
		}
	}

	if !attempt.CanCheck() {
		fmt.Println(appI18n.T(ctx, "NotAttempted"))
		return
	}
	res, err := attempt.Check()
	if err != nil {
		return
	}
	for i, fv := range res.Fields {
		fmt.Printf("  [%d] %s\n", i+1, verdictLabel(ctx, fv))
	}
}

// optionOrder maps display position to stored index, shuffled when enabled.
func optionOrder(n int, shuffle bool, shuffler *quiz.Shuffler) []int {
	if shuffle {
		return shuffler.Perm(n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func readLetter(ctx context.Context, in *bufio.Scanner, n int) (int, bool) {
	fmt.Printf("%s: ", appI18n.T(ctx, "AnswerPrompt"))
	return readLetterInput(in, n)
}

func readLetterInput(in *bufio.Scanner, n int) (int, bool) {
	if !in.Scan() {
		return 0, false
	}
	input := strings.ToUpper(strings.TrimSpace(in.Text()))
	if len(input) != 1 {
		return 0, false
	}
	pos := strings.IndexByte(letters, input[0])
	if pos < 0 || pos >= n {
		return 0, false
	}
	return pos, true
}

func verdictLabel(ctx context.Context, v grading.Verdict) string {
	switch v {
	case grading.Correct:
		return appI18n.T(ctx, "Correct")
	case grading.Incorrect:
		return appI18n.T(ctx, "Incorrect")
	default:
		return appI18n.T(ctx, "NotAttempted")
	}
}
