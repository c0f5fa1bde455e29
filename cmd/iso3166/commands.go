package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"iso3166/dataset"
	"iso3166/internal/common"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the available datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range dataset.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name(), s.Description())
			}

			return nil
		},
	}
}

func newFieldsCmd() *cobra.Command {
	var indexable bool

	cmd := &cobra.Command{
		Use:   "fields <dataset>",
		Short: "List the selectable or indexable fields of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupDataset(args[0])
			if err != nil {
				return err
			}

			fields := s.SelectableFields()
			if indexable {
				fields = s.IndexableFields()
			}

			for _, f := range fields {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.Name, f.Description)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&indexable, "indexable", false, "list the fields usable with --index")

	return cmd
}

type queryFlags struct {
	fields     []string
	offset     int
	count      int
	index      string
	orderBy    string
	descending bool
	search     string
}

func newQueryCmd(a *app) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query <dataset>",
		Short: "Query a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.enquiry(args[0])
			if err != nil {
				return err
			}

			if err := e.Select(f.fields...); err != nil {
				return err
			}

			if f.count >= 0 {
				if err := e.Limit(f.offset, f.count); err != nil {
					return err
				}
			}

			if f.index != "" {
				if err := e.WithIndex(f.index); err != nil {
					return err
				}
			}

			if f.orderBy != "" {
				if err := e.OrderBy(f.orderBy, f.descending); err != nil {
					return err
				}
			}

			if err := e.Search(f.search); err != nil {
				return err
			}

			n, err := e.Get()
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), n, a.cfg.Format, a.cfg.Separator)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&f.fields, "select", nil, "fields to output (default: all public fields)")
	flags.IntVar(&f.offset, "offset", 0, "records to skip in primary-key order")
	flags.IntVar(&f.count, "count", -1, "maximum number of records (negative: no limit)")
	flags.StringVar(&f.index, "index", "", "key the output by this field")
	flags.StringVar(&f.orderBy, "order", "", "order the page by this field")
	flags.BoolVar(&f.descending, "desc", false, "descending order")
	flags.StringVar(&f.search, "search", "", "keep records whose searchable fields contain the term")

	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "get <dataset> <code>",
		Short: "Show one record by primary key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.enquiry(args[0])
			if err != nil {
				return err
			}

			if err := e.Select(fields...); err != nil {
				return err
			}

			code, _ := common.First(args[1:])

			n, err := e.ByCode(strings.TrimSpace(code))
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), n, a.cfg.Format, a.cfg.Separator)
		},
	}

	cmd.Flags().StringSliceVar(&fields, "select", nil, "fields to output (default: all public fields)")

	return cmd
}
