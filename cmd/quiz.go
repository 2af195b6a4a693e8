package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ravlabs/ravos/internal/catalog"
	"github.com/ravlabs/ravos/internal/profile"
	"github.com/ravlabs/ravos/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [topic]",
	Short: "Run a practice assessment",
	Long:  "Starts (or resumes) an assessment for the given topic. Use FULL_MOCK for the full-length mock exam.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := catalog.Topic(args[0])
		if _, ok := catalog.Get(topic); !ok {
			return fmt.Errorf("unknown topic %q; see `ravos quiz topics`", args[0])
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		engine := a.NewQuizEngine()
		info, err := engine.Start(cmd.Context(), topic)
		if errors.Is(err, quiz.ErrNoQuestions) {
			return fmt.Errorf("question uplink failed; try again with an LLM provider configured")
		}
		if err != nil {
			return err
		}
		if info.Abandoned != "" {
			fmt.Printf("Discarded an unfinished %s attempt.\n", info.Abandoned)
			if err := a.Progress.AddSystemLog(
				fmt.Sprintf("unfinished %s attempt discarded", info.Abandoned),
				profile.LogWarning); err != nil {
				return err
			}
		}
		if info.Resumed {
			fmt.Println("Resuming saved attempt.")
		}

		return runAttempt(engine)
	},
}

var quizTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List assessment topics",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range catalog.Topics() {
			fmt.Println(t)
		}
	},
}

func init() {
	quizCmd.AddCommand(quizTopicsCmd)
}

// runAttempt drives the attempt over stdin: one numbered answer per
// question, "f" to flag, "q" to save and quit. A one-second ticker runs
// the countdown alongside the input loop and is stopped before return,
// so no timer outlives the attempt.
func runAttempt(engine *quiz.Engine) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				engine.Tick()
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	attempt := engine.Attempt()
	questions := attempt.Questions

	for i := attempt.CurrentIndex; i < len(questions); {
		if engine.Phase() != quiz.PhaseActive {
			fmt.Println("\nTime expired; attempt submitted.")
			printSummary(engine.Summary())
			return nil
		}
		engine.Navigate(i)
		q := questions[i]

		fmt.Printf("\n[%d/%d] %s\n", i+1, len(questions), q.Question)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}
		fmt.Print("> ")

		if !scanner.Scan() {
			fmt.Println("\nAttempt saved.")
			return nil
		}
		switch input := strings.TrimSpace(scanner.Text()); input {
		case "q":
			fmt.Println("Attempt saved.")
			return nil
		case "f":
			engine.ToggleFlag()
			fmt.Println("(flagged for review)")
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Println("Enter an option number, f to flag, or q to save and quit.")
				continue
			}
			engine.SelectOption(n - 1)
			i++
		}
	}

	summary, err := engine.Finish()
	if err != nil {
		// The countdown can expire between the last answer and the
		// submit; the timer already finished the attempt.
		if s := engine.Summary(); s != nil {
			fmt.Println("\nTime expired; attempt submitted.")
			printSummary(s)
			return nil
		}
		return err
	}
	printSummary(summary)
	return nil
}

func printSummary(summary *quiz.Summary) {
	if summary == nil {
		return
	}
	fmt.Printf("\nScore: %d/%d (%d%%)\n",
		summary.Result.Score, summary.Result.TotalQuestions, summary.Percent)
	if summary.WeakestDomain != "N/A" {
		fmt.Printf("Weakest domain: %s\n", summary.WeakestDomain)
	}
}
