package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.goms.io/synapse/spark-inventory/pkg/inventory"
)

// ConsoleReporter renders the collected inventory as a human-readable tree.
// Output is informational only; there is no machine-readable contract.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter creates a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// Workspace prints a full workspace block: details, notebooks, pools and
// Spark job definitions. Every optional field renders an explicit
// placeholder rather than being omitted.
func (r *ConsoleReporter) Workspace(wi inventory.WorkspaceInventory) {
	r.workspaceDetails(wi.Details)

	if len(wi.Notebooks) == 0 {
		fmt.Fprintf(r.w, "   No notebooks found.\n\n")
	} else {
		for _, nb := range wi.Notebooks {
			r.notebookDetails(nb)
		}
	}

	if len(wi.Pools) == 0 {
		fmt.Fprintf(r.w, "   No Big Data pools found.\n\n")
	} else {
		for _, pool := range wi.Pools {
			r.bigDataPoolDetails(pool)
		}
	}

	if len(wi.Jobs) == 0 {
		fmt.Fprintf(r.w, "   No Spark Job Definitions found.\n\n")
	} else {
		for _, job := range wi.Jobs {
			r.sparkJobDefinitionDetails(job)
		}
	}
}

// SubscriptionSummary prints the per-workspace counts and runtime frequency
// maps for one subscription.
func (r *ConsoleReporter) SubscriptionSummary(inv *inventory.SubscriptionInventory) {
	fmt.Fprintf(r.w, "\n📊 Subscription %s Summary\n", inv.SubscriptionID)
	fmt.Fprintf(r.w, "   Total Workspaces: %d\n\n", len(inv.Workspaces))

	for _, wi := range inv.Workspaces {
		fmt.Fprintf(r.w, "📂 Workspace: %s\n", wi.Details.Name)
		fmt.Fprintf(r.w, "   • Spark Pools: %d\n", len(wi.Pools))
		fmt.Fprintf(r.w, "   • Notebooks: %d (by runtime: %s)\n", len(wi.Notebooks), formatRuntimeMap(wi.NotebooksByRuntime))
		fmt.Fprintf(r.w, "   • Spark Job Definitions: %d (by runtime: %s)\n\n", len(wi.Jobs), formatRuntimeMap(wi.JobsByRuntime))
	}
}

func (r *ConsoleReporter) workspaceDetails(ws inventory.WorkspaceDetails) {
	fmt.Fprintf(r.w, "📂 Workspace: %s\n", ws.Name)
	fmt.Fprintf(r.w, "   • ID: %s\n", ws.ID)
	fmt.Fprintf(r.w, "   • Location: %s\n", ws.Location)
	fmt.Fprintf(r.w, "   • Provisioning State: %s\n", ws.ProvisioningState)
	fmt.Fprintf(r.w, "   • Managed Resource Group: %s\n", ws.ManagedResourceGroup)
	fmt.Fprintf(r.w, "   • Workspace UID: %s\n", ws.WorkspaceUID)

	if len(ws.PrivateEndpointConnections) == 0 {
		fmt.Fprintf(r.w, "   • Private Endpoint Connections: None\n")
	} else {
		fmt.Fprintf(r.w, "   • Private Endpoint Connections: %d\n", len(ws.PrivateEndpointConnections))
		for _, pe := range ws.PrivateEndpointConnections {
			fmt.Fprintf(r.w, "      🔒 Private Endpoint Connection: %s\n", pe.Name)
			fmt.Fprintf(r.w, "         • ID: %s\n", pe.ID)
			fmt.Fprintf(r.w, "         • Type: %s\n", pe.Type)
			fmt.Fprintf(r.w, "         • Provisioning State: %s\n", pe.ProvisioningState)
			fmt.Fprintf(r.w, "         • Private Endpoint ID: %s\n", orPlaceholder(pe.PrivateEndpointID, "N/A"))
			fmt.Fprintf(r.w, "         • Link Status: %s\n", pe.LinkStatus)
			fmt.Fprintf(r.w, "         • Actions Required: %s\n", orPlaceholder(pe.ActionsRequired, "None"))
			fmt.Fprintf(r.w, "         • Description: %s\n", orPlaceholder(pe.Description, "N/A"))
		}
	}

	fmt.Fprintf(r.w, "   • Managed VNet Settings:\n")
	fmt.Fprintf(r.w, "      - Allowed AAD Tenants: %s\n", formatStringList(ws.ManagedVNetSettings.AllowedAADTenants))
	fmt.Fprintf(r.w, "      - Linked Access Check: %t\n", ws.ManagedVNetSettings.LinkedAccessCheck)
	fmt.Fprintf(r.w, "      - Prevent Data Exfiltration: %t\n\n", ws.ManagedVNetSettings.PreventDataExfiltration)
}

func (r *ConsoleReporter) notebookDetails(nb inventory.NotebookDetails) {
	fmt.Fprintf(r.w, "   📝 Notebook: %s\n", nb.Name)
	fmt.Fprintf(r.w, "      • Description: %s\n", orPlaceholder(nb.Description, "N/A"))
	fmt.Fprintf(r.w, "      • Format: %s\n", nb.Format)
	if nb.BigDataPool != nil {
		fmt.Fprintf(r.w, "      • BigDataPool: %s (Type: %s)\n", nb.BigDataPool.ReferenceName, nb.BigDataPool.Type)
	} else {
		fmt.Fprintf(r.w, "      • BigDataPool: None\n")
	}
	if nb.SessionProperties != nil {
		fmt.Fprintf(r.w, "      • Session Properties:\n")
		fmt.Fprintf(r.w, "         - Driver Memory: %s\n", nb.SessionProperties.DriverMemory)
		fmt.Fprintf(r.w, "         - Driver Cores: %d\n", nb.SessionProperties.DriverCores)
		fmt.Fprintf(r.w, "         - Executor Memory: %s\n", nb.SessionProperties.ExecutorMemory)
		fmt.Fprintf(r.w, "         - Executor Cores: %d\n", nb.SessionProperties.ExecutorCores)
		fmt.Fprintf(r.w, "         - Num Executors: %d\n", nb.SessionProperties.NumExecutors)
	} else {
		fmt.Fprintf(r.w, "      • Session Properties: N/A\n")
	}
	fmt.Fprintln(r.w)
}

func (r *ConsoleReporter) bigDataPoolDetails(pool inventory.BigDataPoolDetails) {
	fmt.Fprintf(r.w, "   🔥 Big Data Pool: %s\n", pool.Name)
	fmt.Fprintf(r.w, "      • Spark Version: %s\n", pool.SparkVersion)
	fmt.Fprintf(r.w, "      • Provisioning State: %s\n", pool.ProvisioningState)
	fmt.Fprintf(r.w, "      • Node Count: %d\n", pool.NodeCount)
	fmt.Fprintf(r.w, "      • Node Size: %s (%s)\n", pool.NodeSize, pool.NodeSizeFamily)
	if pool.AutoScale != nil {
		fmt.Fprintf(r.w, "      • AutoScale: Enabled=%t, Min=%d, Max=%d\n", pool.AutoScale.Enabled, pool.AutoScale.MinNodeCount, pool.AutoScale.MaxNodeCount)
	} else {
		fmt.Fprintf(r.w, "      • AutoScale: N/A\n")
	}
	if pool.AutoPause != nil {
		fmt.Fprintf(r.w, "      • AutoPause: Enabled=%t, Delay=%d min\n", pool.AutoPause.Enabled, pool.AutoPause.DelayMinutes)
	} else {
		fmt.Fprintf(r.w, "      • AutoPause: N/A\n")
	}
	if pool.DynamicExecutorAllocation != nil {
		fmt.Fprintf(r.w, "      • Dynamic Executor Allocation: Enabled=%t, Min=%d, Max=%d\n",
			pool.DynamicExecutorAllocation.Enabled, pool.DynamicExecutorAllocation.MinExecutors, pool.DynamicExecutorAllocation.MaxExecutors)
	} else {
		fmt.Fprintf(r.w, "      • Dynamic Executor Allocation: N/A\n")
	}
	if pool.LibraryRequirements != nil {
		fmt.Fprintf(r.w, "      • Library Requirements File: %s (Last Updated: %s)\n", pool.LibraryRequirements.Filename, pool.LibraryRequirements.LastUpdated)
	} else {
		fmt.Fprintf(r.w, "      • Library Requirements File: N/A\n")
	}
	fmt.Fprintf(r.w, "      • Custom Libraries: %d uploaded\n", pool.CustomLibrariesCount)
	fmt.Fprintln(r.w)
}

func (r *ConsoleReporter) sparkJobDefinitionDetails(job inventory.SparkJobDefinitionDetails) {
	fmt.Fprintf(r.w, "   🚀 Spark Job Definition: %s\n", job.Name)
	fmt.Fprintf(r.w, "      • ID: %s\n", job.ID)
	fmt.Fprintf(r.w, "      • Type: %s\n", job.Type)
	fmt.Fprintf(r.w, "      • ETag: %s\n", job.Etag)
	fmt.Fprintf(r.w, "      • Description: %s\n", orPlaceholder(job.Description, "N/A"))
	fmt.Fprintf(r.w, "      • Required Spark Version: %s\n", job.RequiredSparkVersion)
	if job.TargetBigDataPool != nil {
		fmt.Fprintf(r.w, "      • Target Big Data Pool: %s (Type: %s)\n", job.TargetBigDataPool.ReferenceName, job.TargetBigDataPool.Type)
	} else {
		fmt.Fprintf(r.w, "      • Target Big Data Pool: None\n")
	}
	if job.Folder != nil {
		fmt.Fprintf(r.w, "      • Folder: %s\n", *job.Folder)
	} else {
		fmt.Fprintf(r.w, "      • Folder: None\n")
	}
	if job.JobProperties != nil {
		fmt.Fprintf(r.w, "      • Job Properties:\n")
		fmt.Fprintf(r.w, "         - Name: %s\n", job.JobProperties.Name)
		fmt.Fprintf(r.w, "         - File: %s\n", job.JobProperties.File)
		fmt.Fprintf(r.w, "         - ClassName: %s\n", orPlaceholder(job.JobProperties.ClassName, "N/A"))
		fmt.Fprintf(r.w, "         - Language: %s\n", orPlaceholder(job.JobProperties.Language, "N/A"))
		fmt.Fprintf(r.w, "         - Driver Memory: %s\n", job.JobProperties.DriverMemory)
		fmt.Fprintf(r.w, "         - Driver Cores: %d\n", job.JobProperties.DriverCores)
		fmt.Fprintf(r.w, "         - Executor Memory: %s\n", job.JobProperties.ExecutorMemory)
		fmt.Fprintf(r.w, "         - Executor Cores: %d\n", job.JobProperties.ExecutorCores)
		fmt.Fprintf(r.w, "         - Num Executors: %d\n", job.JobProperties.NumExecutors)
		fmt.Fprintf(r.w, "         - Args: %s\n", formatStringList(job.JobProperties.Args))
		fmt.Fprintf(r.w, "         - Jars: %s\n", formatStringList(job.JobProperties.Jars))
		fmt.Fprintf(r.w, "         - PyFiles: %s\n", formatStringList(job.JobProperties.PyFiles))
		fmt.Fprintf(r.w, "         - Files: %s\n", formatStringList(job.JobProperties.Files))
		fmt.Fprintf(r.w, "         - Archives: %s\n", formatStringList(job.JobProperties.Archives))
	} else {
		fmt.Fprintf(r.w, "      • Job Properties: N/A\n")
	}
	fmt.Fprintln(r.w)
}

// orPlaceholder substitutes an explicit placeholder for empty values.
func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// formatRuntimeMap renders a frequency map with sorted keys so report output
// is deterministic.
func formatRuntimeMap(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, fmt.Sprintf("%q: %d", key, counts[key]))
	}
	return "{" + strings.Join(entries, ", ") + "}"
}

// formatStringList renders a string list with explicit brackets, [] when
// empty.
func formatStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
