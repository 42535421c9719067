package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all attempts from the history database",
	Long:  "Delete all attempts from the history database. The results CSV is not touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.AttemptRepo()
		n, err := repo.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("count attempts: %w", err)
		}
		if n == 0 {
			fmt.Println("History is already empty.")
			return nil
		}
		if !yes {
			fmt.Printf("This deletes %d attempts. Re-run with --yes to confirm.\n", n)
			return nil
		}
		if err := repo.DeleteAll(cmd.Context()); err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
		fmt.Printf("Deleted %d attempts.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
