package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matchminded-service/internal/app"
	"matchminded-service/internal/config"
	"matchminded-service/internal/domain"
)

// NewPlayCmd runs the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		answers   string
		showTrace bool
		baseline  bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal and print your matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			scripted, err := parseAnswers(answers)
			if err != nil {
				return err
			}
			engine, cleanup, err := playEngine(cmd.Context(), *configPath, baseline)
			if err != nil {
				return err
			}
			defer cleanup()
			return runPlay(cmd.Context(), engine, cmd.InOrStdin(), cmd.OutOrStdout(), scripted, showTrace)
		},
	}
	cmd.Flags().StringVar(&answers, "answers", "", "comma separated answers (1-5) instead of prompting, e.g. 4,5,2,3,4")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the scoring trace")
	cmd.Flags().BoolVar(&baseline, "baseline", false, "score candidates on their stored answers instead of random ones")
	return cmd
}

func playEngine(ctx context.Context, configPath string, baseline bool) (*app.QuizEngine, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	loader, cleanup, err := catalogLoader(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := loader.LoadCatalog(ctx, cfg.Quiz.Catalog)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	opts := engineOptions(cfg)
	if baseline {
		opts = append(opts, app.WithSampler(app.BaselineSampler))
	}
	engine, err := app.NewQuizEngineFromCatalog(catalog, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, func() {
		engine.Close()
		cleanup()
	}, nil
}

func parseAnswers(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// runPlay feeds answers to the engine, either from scripted or by prompting on in,
// then waits for the results and prints them to out.
func runPlay(ctx context.Context, engine *app.QuizEngine, in io.Reader, out io.Writer, scripted []int, showTrace bool) error {
	updates, cancel := engine.Subscribe()
	defer cancel()

	if scripted != nil {
		if len(scripted) != len(engine.Questions()) {
			return fmt.Errorf("expected %d answers, got %d", len(engine.Questions()), len(scripted))
		}
		for _, v := range scripted {
			if _, err := engine.SubmitAnswer(v); err != nil {
				return err
			}
		}
	} else if err := promptAnswers(engine, in, out); err != nil {
		return err
	}

	fmt.Fprintln(out, "analysing...")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return errors.New("quiz closed before results were ready")
			}
			if snap.Phase != domain.PhaseFinished {
				continue
			}
			printResults(out, snap, showTrace)
			return nil
		}
	}
}

func promptAnswers(engine *app.QuizEngine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		q, ok := engine.CurrentQuestion()
		if !ok {
			return nil
		}
		fmt.Fprintf(out, "\n%s\n", q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		v, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "please enter a number from 1 to 5")
			continue
		}
		if _, err := engine.SubmitAnswer(v); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func printResults(out io.Writer, snap domain.Snapshot, showTrace bool) {
	if showTrace {
		for _, entry := range snap.EventLog {
			fmt.Fprintln(out, entry.String())
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "your type: %s\n", snap.DerivedTypeCode)
	fmt.Fprintln(out, "final match results:")
	for i, r := range snap.MatchResults {
		fmt.Fprintf(out, "%d. %s (%s) - type: %s, compatibility score: %d\n", i+1, r.Name, r.Location, r.TypeCode, r.Score)
	}
}
