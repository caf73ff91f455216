package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the text of a PDF or DOCX document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := extractFile(args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Printf("File:       %s (%s, %d bytes)\n", res.Filename, res.FileType, res.Size)
		fmt.Printf("Words:      %d\n", res.WordCount)
		fmt.Printf("Characters: %d\n", res.CharacterCount)
		fmt.Println(strings.Repeat("─", 60))
		fmt.Println(res.Content)
		return nil
	},
}

func init() {
	extractCmd.Flags().Bool("json", false, "Print the result as JSON")
}
