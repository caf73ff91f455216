package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leerkit/internal/generate"
	"github.com/abhisek/leerkit/internal/practice"
	"github.com/abhisek/leerkit/internal/wizard"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate learning material for the session content",
	Long: `Generate a module from the content stored in the wizard session and
save it there. With --content (or --file) and --level the generation is
stateless: nothing is read from or written to the session.`,
}

// source returns the content and level to generate from, and whether the
// result should be stored in the session.
func source(cmd *cobra.Command, e *env) (string, wizard.Level, bool, error) {
	content, _ := cmd.Flags().GetString("content")
	if f, _ := cmd.Flags().GetString("file"); f != "" {
		res, _, err := extractFile(f)
		if err != nil {
			return "", "", false, err
		}
		content = res.Content
	}
	if content == "" {
		c := e.machine.State().Content
		return c.Subject(), c.Level, true, nil
	}

	l, _ := cmd.Flags().GetString("level")
	level, err := wizard.ParseLevel(l)
	if err != nil {
		return "", "", false, fmt.Errorf("--level is required with --content: %w", err)
	}
	return content, level, false, nil
}

// explain prints a generation failure with its suggestions.
func explain(err error) error {
	var gerr *generate.Error
	if errors.As(err, &gerr) {
		fmt.Fprintln(os.Stderr, gerr.Message)
		for _, s := range gerr.Suggestions {
			fmt.Fprintln(os.Stderr, "  •", s)
		}
	}
	return err
}

var generateFlashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Generate flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		content, level, stateful, err := source(cmd, e)
		if err != nil {
			return err
		}
		var cards []wizard.Flashcard
		if stateful {
			cards, err = e.gen.GenerateFlashcards(cmd.Context(), e.machine)
		} else {
			cards, err = e.gen.Flashcards(cmd.Context(), content, level)
		}
		if err != nil {
			return explain(err)
		}

		for i, c := range cards {
			fmt.Printf("── Card %d/%d ──\n", i+1, len(cards))
			fmt.Printf("Q: %s\nA: %s\n\n", c.Front, c.Back)
		}
		return nil
	},
}

var generateQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a practice quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		content, level, stateful, err := source(cmd, e)
		if err != nil {
			return err
		}
		var questions []wizard.QuizQuestion
		if stateful {
			questions, err = e.gen.GenerateQuiz(cmd.Context(), e.machine)
		} else {
			questions, err = e.gen.Quiz(cmd.Context(), content, level)
		}
		if err != nil {
			return explain(err)
		}

		if play, _ := cmd.Flags().GetBool("play"); play {
			return playQuiz(questions)
		}
		for i, q := range questions {
			fmt.Printf("── Question %d/%d ──\n%s\n", i+1, len(questions), q.Question)
			for j, o := range q.Options {
				mark := " "
				if j == q.CorrectAnswer {
					mark = "*"
				}
				fmt.Printf(" %s %s) %s\n", mark, practice.Letter(j), o)
			}
			fmt.Println()
		}
		return nil
	},
}

// playQuiz asks each question on stdin and prints the score.
func playQuiz(questions []wizard.QuizQuestion) error {
	scanner := bufio.NewScanner(os.Stdin)
	answers := make(map[string]int)

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n%s\n", i+1, len(questions), q.Question)
		for j, o := range q.Options {
			fmt.Printf("  %s) %s\n", practice.Letter(j), o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}
		for j := range q.Options {
			if answer == practice.Letter(j) {
				answers[q.ID] = j
			}
		}

		if chosen, ok := answers[q.ID]; ok && chosen == q.CorrectAnswer {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", practice.Letter(q.CorrectAnswer))
		}
		fmt.Println()
	}

	score := practice.ScoreQuiz(questions, answers)
	fmt.Printf("── Summary: %d/%d correct (%d%%) ──\n", score.Correct, score.Total, score.Percent)
	return nil
}

var generateTheoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Generate the theory overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		content, level, stateful, err := source(cmd, e)
		if err != nil {
			return err
		}
		var sections []wizard.TheorySection
		if stateful {
			sections, err = e.gen.GenerateTheory(cmd.Context(), e.machine)
		} else {
			sections, err = e.gen.Theory(cmd.Context(), content, level)
		}
		if err != nil {
			return explain(err)
		}

		for _, s := range sections {
			fmt.Printf("── %s ──\n%s\n\n", s.Title, s.Content)
		}
		return nil
	},
}

var generateTutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Create the AI tutor and chat with it",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		cb, err := e.gen.StartTutorSession(ctx, e.machine)
		if err != nil {
			return explain(err)
		}
		fmt.Printf("Tutor: %s\n\n", cb.WelcomeMessage)

		if chat, _ := cmd.Flags().GetBool("chat"); !chat {
			return nil
		}

		history := []generate.Turn{{Role: generate.SpeakerTutor, Content: cb.WelcomeMessage}}
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("Leerling: ")
			if !scanner.Scan() {
				fmt.Println()
				return nil
			}
			msg := strings.TrimSpace(scanner.Text())
			if msg == "" {
				continue
			}
			reply, err := e.gen.ReplyInSession(ctx, e.machine, history, msg)
			if err != nil {
				_ = explain(err)
				continue
			}
			history = append(history,
				generate.Turn{Role: generate.SpeakerStudent, Content: msg},
				generate.Turn{Role: generate.SpeakerTutor, Content: reply})
			fmt.Printf("\nTutor: %s\n\n", reply)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{generateFlashcardsCmd, generateQuizCmd, generateTheoryCmd} {
		c.Flags().String("content", "", "Generate from this text instead of the session")
		c.Flags().String("file", "", "Generate from a PDF or DOCX instead of the session")
		c.Flags().String("level", "", "Education level for --content/--file")
	}
	generateQuizCmd.Flags().Bool("play", false, "Answer the quiz interactively")
	generateTutorCmd.Flags().Bool("chat", false, "Keep chatting after the welcome message")

	generateCmd.AddCommand(generateFlashcardsCmd)
	generateCmd.AddCommand(generateQuizCmd)
	generateCmd.AddCommand(generateTheoryCmd)
	generateCmd.AddCommand(generateTutorCmd)
}
