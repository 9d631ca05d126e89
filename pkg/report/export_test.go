package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.goms.io/synapse/spark-inventory/pkg/inventory"
)

func ptr[T any](v T) *T { return &v }

func sampleWorkspace(name string) inventory.WorkspaceInventory {
	return inventory.WorkspaceInventory{
		Details: inventory.WorkspaceDetails{
			Name:                       name,
			ID:                         "/subscriptions/sub-1/resourceGroups/rg1/providers/Microsoft.Synapse/workspaces/" + name,
			Location:                   "westus2",
			PrivateEndpointConnections: []inventory.PrivateEndpointConnectionDetails{},
			ManagedVNetSettings: inventory.ManagedVNetSettings{
				AllowedAADTenants: []string{},
			},
		},
		ResourceGroup: "rg1",
		Notebooks: []inventory.NotebookDetails{
			{Name: "nb1", Format: "v4.2"},
		},
		Pools: []inventory.BigDataPoolDetails{
			{Name: "pool1", SparkVersion: "3.3"},
		},
		Jobs:               []inventory.SparkJobDefinitionDetails{},
		NotebooksByRuntime: map[string]int{"3.3": 1},
		JobsByRuntime:      map[string]int{},
	}
}

func TestBuildWorkspaceExportCounts(t *testing.T) {
	wi := sampleWorkspace("ws1")

	export := BuildWorkspaceExport(wi)
	if export.Notebooks.Count != len(export.Notebooks.Details) {
		t.Fatalf("notebook count %d != len(details) %d", export.Notebooks.Count, len(export.Notebooks.Details))
	}
	if export.BigDataPools.Count != len(export.BigDataPools.Details) {
		t.Fatalf("pool count %d != len(details) %d", export.BigDataPools.Count, len(export.BigDataPools.Details))
	}
	if export.SparkJobDefinitions.Count != len(export.SparkJobDefinitions.Details) {
		t.Fatalf("job count %d != len(details) %d", export.SparkJobDefinitions.Count, len(export.SparkJobDefinitions.Details))
	}
	if export.Summary.Notebooks != 1 || export.Summary.SparkPools != 1 || export.Summary.SparkJobDefinitions != 0 {
		t.Fatalf("summary = %+v", export.Summary)
	}
	if export.ResourceGroup != "rg1" {
		t.Fatalf("resource group = %q, want rg1", export.ResourceGroup)
	}
}

func TestBuildWorkspaceExportNilSlices(t *testing.T) {
	export := BuildWorkspaceExport(inventory.WorkspaceInventory{})

	if export.Notebooks.Details == nil || export.BigDataPools.Details == nil || export.SparkJobDefinitions.Details == nil {
		t.Fatalf("nil detail slices survived: %+v", export)
	}

	data, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	notebooks := decoded["notebooks"].(map[string]any)
	if _, ok := notebooks["details"].([]any); !ok {
		t.Fatalf("notebooks.details not a JSON array: %v", notebooks["details"])
	}
}

func TestBuildSubscriptionExport(t *testing.T) {
	inv := &inventory.SubscriptionInventory{
		SubscriptionID: "sub-1",
		Workspaces: []inventory.WorkspaceInventory{
			sampleWorkspace("ws1"),
			sampleWorkspace("ws2"),
		},
	}
	scannedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	export := BuildSubscriptionExport(inv, scannedAt)
	if export.SubscriptionID != "sub-1" {
		t.Fatalf("subscription id = %q", export.SubscriptionID)
	}
	if export.TotalWorkspaces != 2 || len(export.Workspaces) != 2 {
		t.Fatalf("total workspaces = %d, len = %d, want 2", export.TotalWorkspaces, len(export.Workspaces))
	}
	if export.ScanTimestamp != "2024-03-15T10:30:00Z" {
		t.Fatalf("scan timestamp = %q", export.ScanTimestamp)
	}
}

func TestBuildConsolidatedExport(t *testing.T) {
	results := []inventory.SubscriptionResult{
		{
			SubscriptionID: "sub-1",
			Inventory: &inventory.SubscriptionInventory{
				SubscriptionID: "sub-1",
				Workspaces:     []inventory.WorkspaceInventory{sampleWorkspace("ws1"), sampleWorkspace("ws2")},
			},
		},
		{
			SubscriptionID: "sub-2",
			Err:            errors.New("listing workspaces failed"),
		},
		{
			SubscriptionID: "sub-3",
			Inventory: &inventory.SubscriptionInventory{
				SubscriptionID: "sub-3",
				Workspaces:     []inventory.WorkspaceInventory{sampleWorkspace("ws3")},
			},
		},
	}
	scannedAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	export := BuildConsolidatedExport(results, scannedAt)
	if export.TotalSubscriptions != 3 {
		t.Fatalf("total subscriptions = %d, want 3", export.TotalSubscriptions)
	}
	if len(export.Subscriptions) != 3 {
		t.Fatalf("len(subscriptions) = %d, want every result to keep its slot", len(export.Subscriptions))
	}
	if export.TotalWorkspacesAcrossAllSubscriptions != 3 {
		t.Fatalf("grand total = %d, want 3 (successes only)", export.TotalWorkspacesAcrossAllSubscriptions)
	}

	failed := export.Subscriptions[1]
	if failed.SubscriptionID != "sub-2" {
		t.Fatalf("failed slot subscription id = %q", failed.SubscriptionID)
	}
	if failed.Error != "listing workspaces failed" {
		t.Fatalf("failed slot error = %q", failed.Error)
	}
	if failed.TotalWorkspaces != 0 || len(failed.Workspaces) != 0 || failed.Workspaces == nil {
		t.Fatalf("failed slot workspaces = %+v, want empty list", failed)
	}
}

func TestWriteSubscriptionExportFixedFilename(t *testing.T) {
	dir := t.TempDir()
	inv := &inventory.SubscriptionInventory{
		SubscriptionID: "sub-1",
		Workspaces:     []inventory.WorkspaceInventory{sampleWorkspace("ws1")},
	}

	path, err := WriteSubscriptionExport(dir, inv, time.Now())
	if err != nil {
		t.Fatalf("WriteSubscriptionExport() error = %v", err)
	}
	if filepath.Base(path) != SubscriptionExportFilename {
		t.Fatalf("export filename = %q, want %q", filepath.Base(path), SubscriptionExportFilename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var decoded SubscriptionExport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.SubscriptionID != "sub-1" || decoded.TotalWorkspaces != 1 {
		t.Fatalf("decoded export = %+v", decoded)
	}

	// Second run overwrites the same path.
	again, err := WriteSubscriptionExport(dir, inv, time.Now())
	if err != nil {
		t.Fatalf("second WriteSubscriptionExport() error = %v", err)
	}
	if again != path {
		t.Fatalf("second write produced a new path: %q vs %q", again, path)
	}
}

func TestWriteConsolidatedExportTimestampedFilename(t *testing.T) {
	dir := t.TempDir()
	results := []inventory.SubscriptionResult{
		{
			SubscriptionID: "sub-1",
			Inventory: &inventory.SubscriptionInventory{
				SubscriptionID: "sub-1",
				Workspaces:     []inventory.WorkspaceInventory{sampleWorkspace("ws1")},
			},
		},
	}
	scannedAt := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

	path, err := WriteConsolidatedExport(dir, results, scannedAt)
	if err != nil {
		t.Fatalf("WriteConsolidatedExport() error = %v", err)
	}
	if got, want := filepath.Base(path), "synapse_workspaces_consolidated_20240315_103045.json"; got != want {
		t.Fatalf("consolidated filename = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var decoded ConsolidatedExport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.TotalSubscriptions != 1 || decoded.TotalWorkspacesAcrossAllSubscriptions != 1 {
		t.Fatalf("decoded export = %+v", decoded)
	}
}
