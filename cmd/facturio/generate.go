package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"facturio/internal/client"
	"facturio/internal/config"
	"facturio/internal/controller"
	"facturio/internal/session"
	"facturio/internal/spreadsheet"
	"facturio/internal/storage"
	"facturio/pkg/utils"
)

var (
	genPrompt    string
	genType      string
	genEdits     []string
	genParseOnly bool
	genXLSX      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Parse a prompt into line items and export the document",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genPrompt, "prompt", "p", "", "free-text description of the line items (required)")
	generateCmd.Flags().StringVarP(&genType, "type", "t", session.DefaultDocumentType().String(), "document type (Invoice, Quote, PurchaseOrder, DeliveryNote)")
	generateCmd.Flags().StringArrayVar(&genEdits, "set", nil, "edit a parsed cell before export, as index.field=value (e.g. 0.quantity=3)")
	generateCmd.Flags().BoolVar(&genParseOnly, "parse-only", false, "show the parsed table without exporting")
	generateCmd.Flags().BoolVar(&genXLSX, "xlsx", false, "also save the table as an XLSX workbook")
	generateCmd.MarkFlagRequired("prompt")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	docType, err := session.ParseDocumentType(genType)
	if err != nil {
		return err
	}

	sess := session.New()
	sess.SetPrompt(genPrompt)
	if err := sess.SetDocType(docType); err != nil {
		return err
	}

	ctx := context.Background()

	parseClient := client.NewParseClient(cfg.Services.ParseURL, cfg.Services.Timeout, logger)
	parser := controller.NewParseController(sess, parseClient, cfg.Services.Timeout, logger)
	if err := parser.Parse(ctx); err != nil {
		return err
	}
	if status := sess.Status(); status.IsError() {
		return fmt.Errorf("%s", status.Message)
	}

	for _, edit := range genEdits {
		if err := applyEdit(sess, edit); err != nil {
			return err
		}
	}

	printTable(cmd, sess.Items())

	if genXLSX {
		xlsxPath := filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s.xlsx", sess.DocType()))
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			return err
		}
		if err := spreadsheet.WriteItems(xlsxPath, sess.Items(), sess.DocType()); err != nil {
			return err
		}
		cmd.Printf("Saved %s\n", xlsxPath)
	}

	if genParseOnly {
		return nil
	}

	renderClient := client.NewRenderClient(cfg.Services.RenderURL, cfg.Services.Timeout, logger)
	saver := storage.NewDownloads(cfg.Output.Dir, logger)
	exporter := controller.NewExportController(sess, renderClient, saver, cfg.Services.Timeout, logger)

	path, err := exporter.Export(ctx)
	if err != nil {
		return err
	}
	if status := sess.Status(); status.IsError() {
		return fmt.Errorf("%s", status.Message)
	}

	cmd.Printf("Saved %s\n", path)
	return nil
}

// applyEdit parses index.field=value and applies it to the session table.
func applyEdit(sess *session.Session, edit string) error {
	target, value, ok := strings.Cut(edit, "=")
	if !ok {
		return fmt.Errorf("invalid --set %q: expected index.field=value", edit)
	}
	idxStr, fieldStr, ok := strings.Cut(target, ".")
	if !ok {
		return fmt.Errorf("invalid --set %q: expected index.field=value", edit)
	}
	index, err := strconv.Atoi(idxStr)
	if err != nil {
		return fmt.Errorf("invalid --set index %q", idxStr)
	}
	return sess.UpdateItemField(index, session.Field(fieldStr), value)
}

func printTable(cmd *cobra.Command, items []session.LineItem) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tReference\tName\tQty\tUnit Price")
	for i, item := range items {
		qty, price := "", ""
		if item.Quantity != nil {
			qty = strconv.FormatFloat(*item.Quantity, 'f', -1, 64)
		}
		if item.UnitPrice != nil {
			price = fmt.Sprintf("%.2f", *item.UnitPrice)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, item.Reference, item.Name, qty, price)
	}
	w.Flush()
}

// setup loads configuration and builds the CLI logger.
func setup() (*config.Config, *zap.Logger, error) {
	path := cfgFile
	if path == "" {
		path = "configs/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      level,
		OutputPath: "stderr",
		Format:     "console",
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
