package inventory

// Flat summary records projected from the raw Synapse responses. JSON tags
// match the export schema. Optional nested blocks are pointers: nil means the
// block was absent in the source record, which consumers must distinguish
// from a present block with default fields.

// WorkspaceDetails is the flat workspace summary.
type WorkspaceDetails struct {
	Name                       string                             `json:"name"`
	ID                         string                             `json:"id"`
	Location                   string                             `json:"location"`
	ProvisioningState          string                             `json:"provisioning_state"`
	ManagedResourceGroup       string                             `json:"managed_resource_group"`
	WorkspaceUID               string                             `json:"workspace_uid"`
	PrivateEndpointConnections []PrivateEndpointConnectionDetails `json:"private_endpoint_connections"`
	ManagedVNetSettings        ManagedVNetSettings                `json:"managed_vnet_settings"`
}

// PrivateEndpointConnectionDetails is one private-network connection record.
type PrivateEndpointConnectionDetails struct {
	Name              string `json:"name"`
	ID                string `json:"id"`
	Type              string `json:"type"`
	ProvisioningState string `json:"provisioning_state"`
	PrivateEndpointID string `json:"private_endpoint_id"`
	LinkStatus        string `json:"link_status"`
	ActionsRequired   string `json:"actions_required"`
	Description       string `json:"description"`
}

// ManagedVNetSettings is the workspace network-isolation settings block.
type ManagedVNetSettings struct {
	AllowedAADTenants       []string `json:"allowed_aad_tenants"`
	LinkedAccessCheck       bool     `json:"linked_access_check"`
	PreventDataExfiltration bool     `json:"prevent_data_exfiltration"`
}

// NotebookDetails is the flat notebook summary.
type NotebookDetails struct {
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	Format            string                    `json:"format"`
	BigDataPool       *PoolReferenceDetails     `json:"big_data_pool"`
	SessionProperties *SessionPropertiesDetails `json:"session_properties"`
}

// PoolReferenceDetails is a by-name pool reference.
type PoolReferenceDetails struct {
	ReferenceName string `json:"reference_name"`
	Type          string `json:"type"`
}

// SessionPropertiesDetails is the notebook session sizing.
type SessionPropertiesDetails struct {
	DriverMemory   string `json:"driver_memory"`
	DriverCores    int    `json:"driver_cores"`
	ExecutorMemory string `json:"executor_memory"`
	ExecutorCores  int    `json:"executor_cores"`
	NumExecutors   int    `json:"num_executors"`
}

// BigDataPoolDetails is the flat Spark pool summary.
type BigDataPoolDetails struct {
	Name                      string                            `json:"name"`
	SparkVersion              string                            `json:"spark_version"`
	ProvisioningState         string                            `json:"provisioning_state"`
	NodeCount                 int                               `json:"node_count"`
	NodeSize                  string                            `json:"node_size"`
	NodeSizeFamily            string                            `json:"node_size_family"`
	AutoScale                 *AutoScaleDetails                 `json:"auto_scale"`
	AutoPause                 *AutoPauseDetails                 `json:"auto_pause"`
	DynamicExecutorAllocation *DynamicExecutorAllocationDetails `json:"dynamic_executor_allocation"`
	LibraryRequirements       *LibraryRequirementsDetails       `json:"library_requirements"`
	CustomLibrariesCount      int                               `json:"custom_libraries_count"`
}

// AutoScaleDetails is the pool autoscale block.
type AutoScaleDetails struct {
	Enabled      bool `json:"enabled"`
	MinNodeCount int  `json:"min_node_count"`
	MaxNodeCount int  `json:"max_node_count"`
}

// AutoPauseDetails is the pool autopause block.
type AutoPauseDetails struct {
	Enabled      bool `json:"enabled"`
	DelayMinutes int  `json:"delay_minutes"`
}

// DynamicExecutorAllocationDetails is the pool dynamic allocation block.
type DynamicExecutorAllocationDetails struct {
	Enabled      bool `json:"enabled"`
	MinExecutors int  `json:"min_executors"`
	MaxExecutors int  `json:"max_executors"`
}

// LibraryRequirementsDetails references the pool library manifest.
type LibraryRequirementsDetails struct {
	Filename    string `json:"filename"`
	LastUpdated string `json:"last_updated"`
}

// SparkJobDefinitionDetails is the flat Spark job definition summary.
type SparkJobDefinitionDetails struct {
	Name                 string                `json:"name"`
	ID                   string                `json:"id"`
	Type                 string                `json:"type"`
	Etag                 string                `json:"etag"`
	Description          string                `json:"description"`
	RequiredSparkVersion string                `json:"required_spark_version"`
	TargetBigDataPool    *PoolReferenceDetails `json:"target_big_data_pool"`
	Folder               *string               `json:"folder"`
	JobProperties        *JobPropertiesDetails `json:"job_properties"`
}

// JobPropertiesDetails is the flat batch submission block.
type JobPropertiesDetails struct {
	Name           string   `json:"name"`
	File           string   `json:"file"`
	ClassName      string   `json:"class_name"`
	Language       string   `json:"language"`
	DriverMemory   string   `json:"driver_memory"`
	DriverCores    int      `json:"driver_cores"`
	ExecutorMemory string   `json:"executor_memory"`
	ExecutorCores  int      `json:"executor_cores"`
	NumExecutors   int      `json:"num_executors"`
	Args           []string `json:"args"`
	Jars           []string `json:"jars"`
	PyFiles        []string `json:"py_files"`
	Files          []string `json:"files"`
	Archives       []string `json:"archives"`
}

// WorkspaceInventory is everything collected for one workspace in one run.
type WorkspaceInventory struct {
	Details            WorkspaceDetails
	ResourceGroup      string
	Notebooks          []NotebookDetails
	Pools              []BigDataPoolDetails
	Jobs               []SparkJobDefinitionDetails
	NotebooksByRuntime map[string]int
	JobsByRuntime      map[string]int
}

// SubscriptionInventory is everything collected for one subscription.
type SubscriptionInventory struct {
	SubscriptionID string
	Workspaces     []WorkspaceInventory
}

// SubscriptionResult is the outcome of scanning one subscription: either a
// populated inventory or the error that failed it.
type SubscriptionResult struct {
	SubscriptionID string
	Inventory      *SubscriptionInventory
	Err            error
}

// Succeeded reports whether the subscription scan completed.
func (r SubscriptionResult) Succeeded() bool {
	return r.Err == nil
}
