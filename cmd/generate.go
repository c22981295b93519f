package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/examforge/examgen/internal/exam"
	"github.com/examforge/examgen/internal/itemgen"
	"github.com/examforge/examgen/internal/review"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [material-file]",
	Short: "Generate exam questions from course material",
	Long: "Reads course material from the given file (or stdin) and generates\n" +
		"exam questions as JSON on stdout. Backends are tried in priority\n" +
		"order; each gets a fixed number of attempts before fallback.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qtype, _ := cmd.Flags().GetString("type")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		knowledge, _ := cmd.Flags().GetString("knowledge-point")
		gate, _ := cmd.Flags().GetBool("review")
		outPath, _ := cmd.Flags().GetString("output")

		params := exam.Params{
			Type:           exam.QuestionType(qtype),
			Difficulty:     exam.Difficulty(difficulty),
			KnowledgePoint: knowledge,
		}
		if !params.Type.Valid() {
			return fmt.Errorf("unknown question type %q (single, multiple, true_false)", qtype)
		}
		if !params.Difficulty.Valid() {
			return fmt.Errorf("unknown difficulty %q (easy, medium, hard)", difficulty)
		}
		if count < 1 {
			return fmt.Errorf("count must be at least 1")
		}

		material, err := readMaterial(args)
		if err != nil {
			return err
		}
		params.Content = material

		registry, gateway, store, err := buildLLM(cmd)
		if err != nil {
			return err
		}

		cfg := itemgen.DefaultConfig()
		opts := []itemgen.Option{
			itemgen.WithStore(store),
			itemgen.WithWarn(func(msg string) {
				fmt.Fprintln(os.Stderr, "warning:", msg)
			}),
		}
		if gate {
			cfg.ReviewThreshold = review.DefaultRuleset().PassThreshold
			reviewer := review.New(review.DefaultRuleset())
			opts = append(opts, itemgen.WithReviewGate(func(q exam.Question) (int, bool) {
				res := reviewer.Review(q)
				return res.Score, res.Passed
			}))
		}

		orch := itemgen.New(registry, gateway, cfg, opts...)
		ctx := cmd.Context()

		var questions []exam.Question
		if count == 1 {
			q, err := orch.Generate(ctx, params)
			if err != nil {
				return err
			}
			questions = []exam.Question{q}
		} else {
			questions = orch.GenerateBatch(ctx, params, count, func(fraction float64) {
				fmt.Fprintf(os.Stderr, "progress: %.0f%%\n", fraction*100)
			})
			if len(questions) == 0 {
				return fmt.Errorf("no questions generated")
			}
			if len(questions) < count {
				fmt.Fprintf(os.Stderr, "generated %d of %d questions\n", len(questions), count)
			}
		}

		return writeJSON(outPath, questions)
	},
}

func init() {
	generateCmd.Flags().StringP("type", "t", string(exam.TypeSingle), "Question type: single, multiple, true_false")
	generateCmd.Flags().StringP("difficulty", "d", string(exam.DifficultyMedium), "Difficulty: easy, medium, hard")
	generateCmd.Flags().IntP("count", "n", 1, "Number of questions to generate")
	generateCmd.Flags().StringP("knowledge-point", "k", "", "Knowledge point the questions should target")
	generateCmd.Flags().Bool("review", false, "Gate every candidate through compliance review")
	generateCmd.Flags().StringP("output", "o", "", "Write JSON to this file instead of stdout")
}

func readMaterial(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read material: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read material from stdin: %w", err)
	}
	return string(data), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
