package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

var (
	templateFlag string
	outputFlag   string
	forceExport  bool
)

var processCmd = &cobra.Command{
	Use:   "process <file.pdf> [file.pdf ...]",
	Short: "Convert purchase-order PDFs and export them as XLSX",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&templateFlag, "template", "t", "", "force a template (standard, consolidated, pickingnote) instead of auto-detecting")
	processCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output directory for the XLSX (defaults to config output_dir)")
	processCmd.Flags().BoolVar(&forceExport, "force", false, "export even when preflight finds issues")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	force, err := parseTemplateFlag(templateFlag)
	if err != nil {
		return err
	}

	store, proc, writer, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	result := proc.RunBatch(ctx, args, force, store)

	for _, po := range result.Duplicates {
		fmt.Println(duplicateNotice(po))
	}
	for file, ferr := range result.Failures {
		fmt.Printf("failed  %s: %v\n", file, ferr)
	}
	for _, order := range result.Orders {
		fmt.Printf("order   %s: %s, %d items, total %s\n",
			order.PurchaseOrderNumber, order.TemplateType, len(order.LineItems), order.Total.StringFixed(2))
	}

	if len(result.Orders) == 0 {
		return fmt.Errorf("no orders to export")
	}

	issues, err := writer.Preflight(ctx, result.Orders)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Printf("issue   %s\n", issue)
	}
	if len(issues) > 0 && !forceExport {
		return fmt.Errorf("%d preflight issue(s); re-run with --force to export anyway", len(issues))
	}

	data, err := writer.WriteXLSX(ctx, result.Orders)
	if err != nil {
		return err
	}

	dir := outputFlag
	if dir == "" {
		dir = cfg.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("orders-%s-%s.xlsx", time.Now().Format("20060102-150405"), result.ID)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote   %s (%d orders)\n", path, len(result.Orders))
	return nil
}

// duplicateNotice describes a purchase order seen in an earlier run or
// earlier in this batch. The order is still parsed and exported; the
// operator decides whether to import it again.
func duplicateNotice(po string) string {
	return fmt.Sprintf("dup     %s: purchase order processed before; included for review", po)
}

func parseTemplateFlag(s string) (models.TemplateType, error) {
	switch s {
	case "":
		return "", nil
	case string(models.TemplateStandard):
		return models.TemplateStandard, nil
	case string(models.TemplateConsolidated):
		return models.TemplateConsolidated, nil
	case string(models.TemplatePickingNote):
		return models.TemplatePickingNote, nil
	}
	return "", fmt.Errorf("unknown template %q", s)
}
