package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	removed, err := s.Delete(args[0])
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("No event with id %q.\n", args[0])
		return nil
	}
	fmt.Printf("Deleted event %s.\n", args[0])
	return nil
}
