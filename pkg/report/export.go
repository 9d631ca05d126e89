package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.goms.io/synapse/spark-inventory/pkg/inventory"
	"go.goms.io/synapse/spark-inventory/pkg/utils"
)

const (
	// SubscriptionExportFilename is the fixed, non-timestamped filename for
	// single-subscription exports; the file is overwritten on every run.
	SubscriptionExportFilename = "synapse_metadata_summary.json"

	consolidatedFilenameFormat = "synapse_workspaces_consolidated_%s.json"
	filenameTimestampLayout    = "20060102_150405"
)

// NotebookSection is the notebooks block of a workspace export.
type NotebookSection struct {
	Count     int                         `json:"count"`
	ByRuntime map[string]int              `json:"by_runtime"`
	Details   []inventory.NotebookDetails `json:"details"`
}

// PoolSection is the big data pools block of a workspace export.
type PoolSection struct {
	Count   int                            `json:"count"`
	Details []inventory.BigDataPoolDetails `json:"details"`
}

// JobSection is the Spark job definitions block of a workspace export.
type JobSection struct {
	Count     int                                   `json:"count"`
	ByRuntime map[string]int                        `json:"by_runtime"`
	Details   []inventory.SparkJobDefinitionDetails `json:"details"`
}

// WorkspaceSummary duplicates the per-workspace counts at the top level of
// each workspace record for convenience.
type WorkspaceSummary struct {
	SparkPools          int            `json:"spark_pools"`
	Notebooks           int            `json:"notebooks"`
	NotebooksByRuntime  map[string]int `json:"notebooks_by_runtime"`
	SparkJobDefinitions int            `json:"spark_job_definitions"`
	JobsByRuntime       map[string]int `json:"jobs_by_runtime"`
}

// WorkspaceExport is one workspace record in a JSON export.
type WorkspaceExport struct {
	WorkspaceDetails    inventory.WorkspaceDetails `json:"workspace_details"`
	ResourceGroup       string                     `json:"resource_group"`
	Notebooks           NotebookSection            `json:"notebooks"`
	BigDataPools        PoolSection                `json:"big_data_pools"`
	SparkJobDefinitions JobSection                 `json:"spark_job_definitions"`
	Summary             WorkspaceSummary           `json:"summary"`
}

// SubscriptionExport is the single-subscription export document.
type SubscriptionExport struct {
	SubscriptionID  string            `json:"subscription_id"`
	ScanTimestamp   string            `json:"scan_timestamp"`
	TotalWorkspaces int               `json:"total_workspaces"`
	Workspaces      []WorkspaceExport `json:"workspaces"`
}

// SubscriptionEntry is one subscription slot in a consolidated export:
// either full workspace data or an error record. Failed subscriptions are
// never dropped from the list.
type SubscriptionEntry struct {
	SubscriptionID  string            `json:"subscription_id"`
	Error           string            `json:"error,omitempty"`
	TotalWorkspaces int               `json:"total_workspaces"`
	Workspaces      []WorkspaceExport `json:"workspaces"`
}

// ConsolidatedExport is the multi-subscription export document.
type ConsolidatedExport struct {
	ScanTimestamp                         string              `json:"scan_timestamp"`
	TotalSubscriptions                    int                 `json:"total_subscriptions"`
	Subscriptions                         []SubscriptionEntry `json:"subscriptions"`
	TotalWorkspacesAcrossAllSubscriptions int                 `json:"total_workspaces_across_all_subscriptions"`
}

// BuildWorkspaceExport assembles the export record for one workspace.
func BuildWorkspaceExport(wi inventory.WorkspaceInventory) WorkspaceExport {
	notebooks := wi.Notebooks
	if notebooks == nil {
		notebooks = []inventory.NotebookDetails{}
	}
	pools := wi.Pools
	if pools == nil {
		pools = []inventory.BigDataPoolDetails{}
	}
	jobs := wi.Jobs
	if jobs == nil {
		jobs = []inventory.SparkJobDefinitionDetails{}
	}

	return WorkspaceExport{
		WorkspaceDetails: wi.Details,
		ResourceGroup:    wi.ResourceGroup,
		Notebooks: NotebookSection{
			Count:     len(notebooks),
			ByRuntime: wi.NotebooksByRuntime,
			Details:   notebooks,
		},
		BigDataPools: PoolSection{
			Count:   len(pools),
			Details: pools,
		},
		SparkJobDefinitions: JobSection{
			Count:     len(jobs),
			ByRuntime: wi.JobsByRuntime,
			Details:   jobs,
		},
		Summary: WorkspaceSummary{
			SparkPools:          len(pools),
			Notebooks:           len(notebooks),
			NotebooksByRuntime:  wi.NotebooksByRuntime,
			SparkJobDefinitions: len(jobs),
			JobsByRuntime:       wi.JobsByRuntime,
		},
	}
}

// BuildSubscriptionExport assembles the single-subscription export document.
func BuildSubscriptionExport(inv *inventory.SubscriptionInventory, scannedAt time.Time) SubscriptionExport {
	export := SubscriptionExport{
		SubscriptionID:  inv.SubscriptionID,
		ScanTimestamp:   scannedAt.Format(time.RFC3339),
		TotalWorkspaces: len(inv.Workspaces),
		Workspaces:      []WorkspaceExport{},
	}

	for _, wi := range inv.Workspaces {
		export.Workspaces = append(export.Workspaces, BuildWorkspaceExport(wi))
	}

	return export
}

// BuildConsolidatedExport assembles the multi-subscription export document.
// Every result occupies a slot: failed subscriptions become error records
// with zero workspaces. The grand total counts successful entries only.
func BuildConsolidatedExport(results []inventory.SubscriptionResult, scannedAt time.Time) ConsolidatedExport {
	export := ConsolidatedExport{
		ScanTimestamp:      scannedAt.Format(time.RFC3339),
		TotalSubscriptions: len(results),
		Subscriptions:      []SubscriptionEntry{},
	}

	for _, result := range results {
		if !result.Succeeded() {
			export.Subscriptions = append(export.Subscriptions, SubscriptionEntry{
				SubscriptionID:  result.SubscriptionID,
				Error:           result.Err.Error(),
				TotalWorkspaces: 0,
				Workspaces:      []WorkspaceExport{},
			})
			continue
		}

		sub := BuildSubscriptionExport(result.Inventory, scannedAt)
		export.Subscriptions = append(export.Subscriptions, SubscriptionEntry{
			SubscriptionID:  sub.SubscriptionID,
			TotalWorkspaces: sub.TotalWorkspaces,
			Workspaces:      sub.Workspaces,
		})
		export.TotalWorkspacesAcrossAllSubscriptions += sub.TotalWorkspaces
	}

	return export
}

// WriteSubscriptionExport writes the single-subscription export file into
// dir and returns its path.
func WriteSubscriptionExport(dir string, inv *inventory.SubscriptionInventory, scannedAt time.Time) (string, error) {
	path := filepath.Join(dir, SubscriptionExportFilename)
	if err := writeJSON(path, BuildSubscriptionExport(inv, scannedAt)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConsolidatedExport writes the timestamped consolidated export file
// into dir and returns its path.
func WriteConsolidatedExport(dir string, results []inventory.SubscriptionResult, scannedAt time.Time) (string, error) {
	filename := fmt.Sprintf(consolidatedFilenameFormat, scannedAt.Format(filenameTimestampLayout))
	path := filepath.Join(dir, filename)
	if err := writeJSON(path, BuildConsolidatedExport(results, scannedAt)); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export JSON: %w", err)
	}
	data = append(data, '\n')

	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return nil
}
