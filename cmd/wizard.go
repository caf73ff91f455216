package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/leerkit/internal/extract"
	"github.com/abhisek/leerkit/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Inspect and drive the persisted wizard session",
}

// wizardAction wraps a state transition as a subcommand body that prints
// the resulting state.
func wizardAction(fn func(cmd *cobra.Command, args []string, e *env) (wizard.State, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := fn(cmd, args, e)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printState(st)
		return nil
	}
}

var wizardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current wizard state",
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		return e.machine.State(), nil
	}),
}

var wizardNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Go to the next step",
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		if !wizard.CanProceed(e.machine.State()) {
			fmt.Fprintln(os.Stderr, "Warning: the current step is not finished yet.")
		}
		return e.machine.Advance(cmd.Context()), nil
	}),
}

var wizardBackCmd = &cobra.Command{
	Use:   "back",
	Short: "Go to the previous step",
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		return e.machine.Retreat(cmd.Context()), nil
	}),
}

var wizardJumpCmd = &cobra.Command{
	Use:   "jump <step>",
	Short: "Jump to a step (1-6)",
	Args:  cobra.ExactArgs(1),
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return wizard.State{}, fmt.Errorf("invalid step %q: %w", args[0], err)
		}
		return e.machine.JumpTo(cmd.Context(), wizard.Step(n)), nil
	}),
}

var wizardAcceptCmd = &cobra.Command{
	Use:   "accept <module>",
	Short: "Accept a module (chatbot, theory, flashcards, quiz) and move on",
	Args:  cobra.ExactArgs(1),
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		mod, err := wizard.ParseModule(args[0])
		if err != nil {
			return wizard.State{}, err
		}
		st := e.machine.AcceptModule(cmd.Context(), mod)
		if stay, _ := cmd.Flags().GetBool("stay"); stay {
			return st, nil
		}
		return e.machine.Advance(cmd.Context()), nil
	}),
}

var wizardCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark the learning environment as finished",
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		return e.machine.MarkComplete(cmd.Context()), nil
	}),
}

var wizardResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the session and start over",
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		return e.machine.Reset(cmd.Context()), nil
	}),
}

var wizardContentCmd = &cobra.Command{
	Use:   "content",
	Short: "Set subject text, didactics and level, or upload documents",
	RunE: wizardAction(func(cmd *cobra.Command, args []string, e *env) (wizard.State, error) {
		ctx := cmd.Context()
		var patch wizard.ContentPatch

		if cmd.Flags().Changed("subject") {
			s, _ := cmd.Flags().GetString("subject")
			patch.SubjectText = &s
		}
		if f, _ := cmd.Flags().GetString("subject-file"); f != "" {
			data, err := os.ReadFile(f)
			if err != nil {
				return wizard.State{}, fmt.Errorf("read subject file: %w", err)
			}
			s := string(data)
			patch.SubjectText = &s
		}
		if cmd.Flags().Changed("didactics") {
			d, _ := cmd.Flags().GetString("didactics")
			patch.Didactics = &d
		}
		if l, _ := cmd.Flags().GetString("level"); l != "" {
			level, err := wizard.ParseLevel(l)
			if err != nil {
				return wizard.State{}, err
			}
			patch.Level = &level
		}
		st := e.machine.UpdateContent(ctx, patch)

		uploads, _ := cmd.Flags().GetStringSlice("upload")
		for _, path := range uploads {
			res, data, err := extractFile(path)
			if err != nil {
				return wizard.State{}, err
			}
			file := wizard.UploadedFile{Name: res.Filename, Size: res.Size, Data: data}
			st = e.machine.AddUpload(ctx, file, res.Content)
			fmt.Fprintf(os.Stderr, "Added %s (%d words)\n", res.Filename, res.WordCount)
		}
		return st, nil
	}),
}

// extractFile reads path and extracts its text.
func extractFile(path string) (*extract.Result, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	res, err := extract.Extract(filepath.Base(path), data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, data, nil
}

func printState(st wizard.State) {
	sep := strings.Repeat("─", 60)

	fmt.Printf("Step:       %d/%d  %s\n", st.CurrentStep, wizard.LastStep, st.CurrentStep.Title())
	fmt.Printf("Can proceed: %v\n", wizard.CanProceed(st))
	fmt.Printf("Level:      %s\n", st.Content.Level)
	fmt.Printf("Subject:    %s\n", preview(st.Content.SubjectText, 60))
	fmt.Printf("Uploads:    %d\n", len(st.Content.UploadedFileContents))
	fmt.Println(sep)

	chatbot := "-"
	if cb := st.Generated.Chatbot; cb != nil {
		chatbot = preview(cb.WelcomeMessage, 48)
	}
	fmt.Printf("%-12s %s\n", "Chatbot", chatbot)
	fmt.Printf("%-12s %d sections\n", "Theory", len(st.Generated.TheoryOverview))
	fmt.Printf("%-12s %d cards\n", "Flashcards", len(st.Generated.Flashcards))
	fmt.Printf("%-12s %d questions\n", "Quiz", len(st.Generated.Quiz))
	fmt.Println(sep)

	var accepted []string
	for _, m := range st.AcceptedModules {
		accepted = append(accepted, string(m))
	}
	if len(accepted) == 0 {
		accepted = []string{"(none)"}
	}
	fmt.Printf("Accepted:   %s\n", strings.Join(accepted, ", "))
	fmt.Printf("Complete:   %v\n", st.Complete)
}

// preview returns the first line of s, cut to n runes.
func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	if r := []rune(s); len(r) > n {
		s = string(r[:n-1]) + "…"
	}
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	wizardCmd.PersistentFlags().Bool("json", false, "Print the state as JSON")

	wizardAcceptCmd.Flags().Bool("stay", false, "Accept without moving to the next step")

	wizardContentCmd.Flags().String("subject", "", "Subject text")
	wizardContentCmd.Flags().String("subject-file", "", "Read subject text from a file")
	wizardContentCmd.Flags().String("didactics", "", "Tutor didactics")
	wizardContentCmd.Flags().String("level", "", "Education level: PO, VMBO, HAVO, VWO, MBO, HBO, UNI")
	wizardContentCmd.Flags().StringSlice("upload", nil, "PDF or DOCX file to add (repeatable)")

	wizardCmd.AddCommand(wizardShowCmd)
	wizardCmd.AddCommand(wizardNextCmd)
	wizardCmd.AddCommand(wizardBackCmd)
	wizardCmd.AddCommand(wizardJumpCmd)
	wizardCmd.AddCommand(wizardAcceptCmd)
	wizardCmd.AddCommand(wizardCompleteCmd)
	wizardCmd.AddCommand(wizardResetCmd)
	wizardCmd.AddCommand(wizardContentCmd)
}
