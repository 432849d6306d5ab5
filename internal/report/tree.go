// Package report renders an inventory audit for terminals.
package report

import (
	"fmt"
	"strings"

	"github.com/disiqueira/gotree/v3"

	models "importdocs/internal/domain/models/docsystem"
)

// Root labels of the rendered tree
const (
	RootLabel      = "Import Docs"
	missingMarker  = " [missing blob]"
	orphansLabel   = "Orphan blobs"
	suppliersLabel = "Suppliers"
	foldersLabel   = "Folders"
)

// RenderAudit draws the supplier and folder hierarchy with each document's
// blob key, followed by a summary of inconsistencies.
func RenderAudit(report *models.AuditReport) string {
	root := gotree.New(RootLabel)

	suppliers := root.Add(suppliersLabel)
	for _, supplier := range report.Suppliers {
		supplierNode := suppliers.Add(supplier.Name)
		for _, shipment := range supplier.Shipments {
			shipmentNode := supplierNode.Add(shipment.Name)
			addDocuments(shipmentNode, shipment.Documents)
		}
	}

	folders := root.Add(foldersLabel)
	for _, folder := range report.Folders {
		addDocuments(folders.Add(folder.Name), folder.Documents)
	}

	if len(report.OrphanBlobs) > 0 {
		orphans := root.Add(orphansLabel)
		for _, key := range report.OrphanBlobs {
			orphans.Add(key)
		}
	}

	var b strings.Builder
	b.WriteString(root.Print())
	fmt.Fprintf(&b, "\n%d documents, %d missing blobs, %d orphan blobs, %d shipments without a supplier\n",
		report.DocumentCount, len(report.MissingBlobs), len(report.OrphanBlobs), report.UnownedRecords)
	return b.String()
}

func addDocuments(parent gotree.Tree, docs []models.DocumentTreeNode) {
	for _, doc := range docs {
		label := fmt.Sprintf("%s (%s) -> %s", doc.OriginalName, doc.DocType, doc.FilePath)
		if doc.BlobMissing {
			label += missingMarker
		}
		parent.Add(label)
	}
}
