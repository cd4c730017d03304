package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"booklibrary/internal/isbn"
)

func newCheckISBNCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-isbn ISBN...",
		Short: "Validate ISBN-13 numbers offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, arg := range args {
				if err := isbn.Check(arg); err != nil {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tinvalid (%v)\n", arg, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tvalid\n", arg)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d ISBNs invalid", invalid, len(args))
			}
			return nil
		},
	}
}
