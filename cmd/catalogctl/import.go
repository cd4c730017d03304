package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"booklibrary/internal/book"
	"booklibrary/internal/ingest"
	"booklibrary/internal/platform/openlibrary"
)

func newImportCmd(open opener) *cobra.Command {
	var (
		baseURL     string
		rps         int
		retries     int
		defaultLang string
	)
	cmd := &cobra.Command{
		Use:   "import ISBN...",
		Short: "Create books from Open Library metadata",
		Long:  "Look up each ISBN on Open Library and create the book through the same validation and duplicate checks as PUT /api/v1/create. Prints a YAML report.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := openlibrary.NewClient(baseURL, "booklibrary-catalogctl", rps, retries)

			return withService(cmd.Context(), open, func(svc *book.Service) error {
				bar := progressbar.NewOptions(len(args),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("importing"),
					progressbar.OptionShowCount(),
				)
				defer func() { _ = bar.Finish() }()

				importer := ingest.NewService(client, svc, ingest.Config{DefaultLanguage: defaultLang})
				run, err := importer.Import(cmd.Context(), args, func() { _ = bar.Add(1) })
				if err != nil {
					return err
				}

				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(run); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				return enc.Close()
			})
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", openlibrary.DefaultBaseURL, "Open Library base URL")
	cmd.Flags().IntVar(&rps, "rps", 1, "maximum requests per second to Open Library")
	cmd.Flags().IntVar(&retries, "retries", 3, "retries for throttled or failed requests")
	cmd.Flags().StringVar(&defaultLang, "default-lang", "en", "language used when an edition lists none")
	return cmd
}
