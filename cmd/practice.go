package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/leerkit/internal/app"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Open the learning environment in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

// runPractice opens the TUI on the stored session. Logging goes to the
// log file only so it cannot corrupt the screen.
func runPractice(cmd *cobra.Command) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		State: e.machine.State(),
		Tutor: e.gen,
	})
}
