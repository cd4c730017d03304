package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"booklibrary/internal/book"
)

var errAuditFindings = errors.New("audit found problems")

func newAuditCmd(open opener) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report duplicate and invalid ISBNs",
		Long:  "Scan every book and print a YAML report of ISBNs shared by several books and ISBNs that fail validation. Nothing is modified.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc *book.Service) error {
				report, err := svc.Audit(cmd.Context())
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				if err := enc.Close(); err != nil {
					return err
				}
				if strict && !report.Clean() {
					return errAuditFindings
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the report is not clean")
	return cmd
}
