// Command audit prints the supplier/shipment/folder/document inventory as a
// tree and reports blobs that are missing or unreferenced. It never repairs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"importdocs/internal/app"
	"importdocs/internal/config"
	models "importdocs/internal/domain/models/docsystem"
	"importdocs/internal/report"
	serviceDocsys "importdocs/internal/service/docsystem"

	"github.com/joho/godotenv"
)

func main() {
	asJSON := flag.Bool("json", false, "print the report as JSON instead of a tree")
	strict := flag.Bool("strict", false, "exit with status 2 when missing or orphan blobs are found")
	timeout := flag.Duration("timeout", 5*time.Minute, "abort the audit after this long")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr so stdout carries only the report
	logger := config.NewLogger(cfg.Environment, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()

	auditService := serviceDocsys.NewAuditService(stores.Suppliers, stores.Shipments, stores.Folders, stores.Documents, stores.Blobs, logger)
	result, err := auditService.Audit(ctx)
	if err != nil {
		stores.Close()
		log.Fatalf("Audit failed: %v", err)
	}

	if err := write(os.Stdout, result, *asJSON); err != nil {
		stores.Close()
		log.Fatalf("Failed to write report: %v", err)
	}

	if *strict && (len(result.MissingBlobs) > 0 || len(result.OrphanBlobs) > 0) {
		stores.Close()
		os.Exit(2)
	}
}

func write(w io.Writer, result *models.AuditReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err := fmt.Fprint(w, report.RenderAudit(result))
	return err
}
