package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/examforge/examgen/internal/exam"
	"github.com/examforge/examgen/internal/review"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <questions-file>",
	Short: "Run compliance review over generated questions",
	Long: "Reads a question object or array from the given JSON file (or\n" +
		"stdin via \"-\") and prints a compliance verdict for each. Exits\n" +
		"non-zero when any question fails.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		questions, err := readQuestions(args[0])
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return fmt.Errorf("no questions in input")
		}

		reviewer := review.New(review.DefaultRuleset())
		results := reviewer.BatchReview(questions)

		if asJSON {
			if err := writeJSON("", results); err != nil {
				return err
			}
		} else {
			printResults(results)
		}

		for _, res := range results {
			if !res.Passed {
				return fmt.Errorf("%d of %d questions failed review", countFailed(results), len(results))
			}
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().Bool("json", false, "Emit results as JSON")
}

// readQuestions accepts either a single question object or an array.
func readQuestions(path string) ([]exam.Question, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	var questions []exam.Question
	if err := json.Unmarshal(data, &questions); err == nil {
		return questions, nil
	}
	var single exam.Question
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return []exam.Question{single}, nil
}

func printResults(results map[string]review.Result) {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		res := results[id]
		verdict := "PASS"
		if !res.Passed {
			verdict = "FAIL"
		}
		fmt.Printf("%s  score=%d  %s\n", id, res.Score, verdict)
		for _, issue := range res.Issues {
			fmt.Printf("  [%s/%s] %s: %s\n", issue.Kind, issue.Severity, issue.Category, issue.Description)
		}
		for _, s := range res.Suggestions {
			fmt.Printf("  -> %s\n", s)
		}
	}
}

func countFailed(results map[string]review.Result) int {
	n := 0
	for _, res := range results {
		if !res.Passed {
			n++
		}
	}
	return n
}
