package inventory

// Sentinel labels used in the runtime frequency maps.
const (
	// RuntimeNoPoolAttached marks notebooks with no pool reference.
	RuntimeNoPoolAttached = "No pool attached"
	// RuntimeUnknown marks an unresolved runtime: a dangling pool reference
	// or a resolved pool with no declared Spark version.
	RuntimeUnknown = "Unknown"
)

// CountNotebooksByRuntime groups a workspace's notebooks by their effective
// Spark runtime, resolved through the workspace's pool list by exact name
// match (first match wins). The result does not depend on input order.
func CountNotebooksByRuntime(notebooks []NotebookDetails, pools []BigDataPoolDetails) map[string]int {
	counts := make(map[string]int)

	for _, nb := range notebooks {
		counts[resolveNotebookRuntime(nb, pools)]++
	}

	return counts
}

func resolveNotebookRuntime(nb NotebookDetails, pools []BigDataPoolDetails) string {
	if nb.BigDataPool == nil {
		return RuntimeNoPoolAttached
	}

	for _, pool := range pools {
		if pool.Name == nb.BigDataPool.ReferenceName {
			if pool.SparkVersion == "" {
				return RuntimeUnknown
			}
			return pool.SparkVersion
		}
	}

	return RuntimeUnknown
}

// CountJobsByRuntime groups a workspace's Spark job definitions by their
// declared required runtime.
func CountJobsByRuntime(jobs []SparkJobDefinitionDetails) map[string]int {
	counts := make(map[string]int)

	for _, job := range jobs {
		runtime := job.RequiredSparkVersion
		if runtime == "" {
			runtime = RuntimeUnknown
		}
		counts[runtime]++
	}

	return counts
}
