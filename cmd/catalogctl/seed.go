package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"booklibrary/internal/book"
	"booklibrary/internal/httpx"
)

//go:embed sample_books.yaml
var sampleBooks []byte

type seedFile struct {
	Books []book.Input `yaml:"books"`
}

type seedResult struct {
	Created    int
	Duplicates int
	Invalid    int
}

func newSeedCmd(open opener) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load books through the creation workflow",
		Long:  "Load books from a YAML file (or the built-in sample) through the same validation and duplicate checks as PUT /api/v1/create.",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := sampleBooks
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read seed file: %w", err)
				}
				data = b
			}
			inputs, err := parseSeed(data)
			if err != nil {
				return err
			}

			return withService(cmd.Context(), open, func(svc *book.Service) error {
				res, err := seed(cmd, svc, inputs)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %d, duplicates %d, invalid %d\n", res.Created, res.Duplicates, res.Invalid)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a top-level books list")
	return cmd
}

func parseSeed(data []byte) ([]book.Input, error) {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(sf.Books) == 0 {
		return nil, errors.New("seed file contains no books")
	}
	return sf.Books, nil
}

// seed creates each input in order. Rejected inputs are counted and skipped; only
// store failures abort the run.
func seed(cmd *cobra.Command, svc *book.Service, inputs []book.Input) (seedResult, error) {
	var res seedResult
	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("seeding"),
		progressbar.OptionShowCount(),
	)
	defer func() { _ = bar.Finish() }()

	for _, in := range inputs {
		_ = bar.Add(1)

		if errs := httpx.ValidateStruct(in); len(errs) > 0 {
			res.Invalid++
			fmt.Fprintf(cmd.ErrOrStderr(), "\nskip %q: %s\n", in.ISBN, errs[0].Message)
			continue
		}

		_, err := svc.Create(cmd.Context(), in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, book.ErrDuplicateISBN):
			res.Duplicates++
		case errors.Is(err, book.ErrInvalidISBN):
			res.Invalid++
		default:
			return res, err
		}
	}
	return res, nil
}
