// cmd/variantctl/root.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	mallquery "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall"
	dto "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall/dto"
	"github.com/komekovv/zen-moda-client-sub000/internal/domain/variant"
	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
	"github.com/komekovv/zen-moda-client-sub000/internal/infra/logging"
	mallDI "github.com/komekovv/zen-moda-client-sub000/internal/platform/di/mall"
)

type rootOptions struct {
	file       string
	colorTable string
	logLevel   string
}

// session is one command's query plus whatever must be closed after it.
type session struct {
	query     *mallquery.VariantQuery
	productID string
	close     func()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "variantctl",
		Short:         "Inspect how a product's variants group by color and size",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "product record (JSON or YAML); reads the configured store when empty")
	root.PersistentFlags().StringVar(&opts.colorTable, "color-table", "", "YAML color table (default: built-in)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "debug|info|warn|error")

	root.AddCommand(
		newBuildCmd(opts),
		newResolveCmd(opts),
		newSizesCmd(opts),
		newColorsCmd(opts),
		newSelectCmd(opts),
	)
	return root
}

func (o *rootOptions) open(cmd *cobra.Command, args []string) (*session, error) {
	logger, err := logging.New(o.logLevel, "console")
	if err != nil {
		return nil, err
	}

	var id string
	if len(args) > 0 {
		id = strings.TrimSpace(args[0])
	}

	if o.file != "" {
		r, err := loadProductFile(o.file)
		if err != nil {
			return nil, err
		}
		tables, err := appcfg.LoadColorTables(o.colorTable)
		if err != nil {
			return nil, err
		}
		if id == "" {
			id = r.product.ID
		}
		q := mallquery.NewVariantQuery(r, variant.NewBuilder(tables.BuilderOptions()...), mallquery.WithLogger(logger))
		return &session{query: q, productID: id, close: func() { _ = logger.Sync() }}, nil
	}

	if id == "" {
		return nil, errors.New("product id is required without --file")
	}
	cfg, err := appcfg.Load()
	if err != nil {
		return nil, err
	}
	if o.colorTable != "" {
		cfg.ColorTableFile = o.colorTable
	}
	cont, err := mallDI.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		query:     cont.VariantQ,
		productID: id,
		close: func() {
			_ = cont.Close()
			_ = logger.Sync()
		},
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func run(opts *rootOptions, fn func(cmd *cobra.Command, s *session) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := opts.open(cmd, args)
		if err != nil {
			return err
		}
		defer s.close()

		out, err := fn(cmd, s)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "build [product-id]",
		Short: "Print colors, sizes and the variant index",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, s *session) (any, error) {
			return s.query.GetVariantData(cmd.Context(), s.productID)
		}),
	}
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var color, size string
	cmd := &cobra.Command{
		Use:   "resolve [product-id]",
		Short: "Resolve a color/size pair to a variant",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, s *session) (any, error) {
			return s.query.ResolveVariant(cmd.Context(), s.productID, color, size)
		}),
	}
	cmd.Flags().StringVar(&color, "color", "", "color id")
	cmd.Flags().StringVar(&size, "size", "", "size id")
	return cmd
}

func newSizesCmd(opts *rootOptions) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "sizes [product-id]",
		Short: "List sizes with availability for a color",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, s *session) (any, error) {
			return s.query.AvailableSizes(cmd.Context(), s.productID, color)
		}),
	}
	cmd.Flags().StringVar(&color, "color", "", "color id")
	return cmd
}

func newColorsCmd(opts *rootOptions) *cobra.Command {
	var size string
	cmd := &cobra.Command{
		Use:   "colors [product-id]",
		Short: "List colors with availability for a size",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, s *session) (any, error) {
			return s.query.AvailableColors(cmd.Context(), s.productID, size)
		}),
	}
	cmd.Flags().StringVar(&size, "size", "", "size id")
	return cmd
}

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var curColor, curSize, axis, value string
	cmd := &cobra.Command{
		Use:   "select [product-id]",
		Short: "Apply one color or size choice to a selection",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, s *session) (any, error) {
			switch axis {
			case "", "color", "size":
			default:
				return nil, fmt.Errorf("--axis must be color or size, got %q", axis)
			}
			current := dto.SelectionDTO{ColorID: curColor, SizeID: curSize}
			return s.query.Select(cmd.Context(), s.productID, current, axis, value)
		}),
	}
	cmd.Flags().StringVar(&curColor, "current-color", "", "currently selected color id")
	cmd.Flags().StringVar(&curSize, "current-size", "", "currently selected size id")
	cmd.Flags().StringVar(&axis, "axis", "", "color|size; empty recomputes the current selection")
	cmd.Flags().StringVar(&value, "value", "", "chosen option id")
	return cmd
}
