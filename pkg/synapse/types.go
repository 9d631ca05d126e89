package synapse

// Wire types for the Synapse REST listings. Optional nested blocks are
// pointers so that "block absent" survives into extraction.

// listEnvelope is the common {"value": [...]} response wrapper.
type listEnvelope[T any] struct {
	Value []T `json:"value"`
}

// Notebook is a raw notebook record from the workspace data plane.
type Notebook struct {
	Name       string             `json:"name"`
	Properties NotebookProperties `json:"properties"`
}

// NotebookProperties holds the nested notebook attributes.
type NotebookProperties struct {
	Description       string             `json:"description"`
	Nbformat          int                `json:"nbformat"`
	NbformatMinor     int                `json:"nbformat_minor"`
	BigDataPool       *PoolReference     `json:"bigDataPool"`
	SessionProperties *SessionProperties `json:"sessionProperties"`
}

// PoolReference names a big data pool by reference, not ownership. A
// reference that matches no pool in the workspace is still valid.
type PoolReference struct {
	ReferenceName string `json:"referenceName"`
	Type          string `json:"type"`
}

// SessionProperties is the Spark session sizing attached to a notebook.
type SessionProperties struct {
	DriverMemory   string `json:"driverMemory"`
	DriverCores    int    `json:"driverCores"`
	ExecutorMemory string `json:"executorMemory"`
	ExecutorCores  int    `json:"executorCores"`
	NumExecutors   int    `json:"numExecutors"`
}

// BigDataPool is a raw Spark pool record from the management plane.
type BigDataPool struct {
	Name       string                `json:"name"`
	Properties BigDataPoolProperties `json:"properties"`
}

// BigDataPoolProperties holds the nested pool attributes.
type BigDataPoolProperties struct {
	SparkVersion              string                     `json:"sparkVersion"`
	ProvisioningState         string                     `json:"provisioningState"`
	NodeCount                 int                        `json:"nodeCount"`
	NodeSize                  string                     `json:"nodeSize"`
	NodeSizeFamily            string                     `json:"nodeSizeFamily"`
	AutoScale                 *AutoScale                 `json:"autoScale"`
	AutoPause                 *AutoPause                 `json:"autoPause"`
	DynamicExecutorAllocation *DynamicExecutorAllocation `json:"dynamicExecutorAllocation"`
	LibraryRequirements       *LibraryRequirements       `json:"libraryRequirements"`
	CustomLibraries           []CustomLibrary            `json:"customLibraries"`
}

// AutoScale holds the pool autoscale bounds.
type AutoScale struct {
	Enabled      bool `json:"enabled"`
	MinNodeCount int  `json:"minNodeCount"`
	MaxNodeCount int  `json:"maxNodeCount"`
}

// AutoPause holds the pool autopause policy.
type AutoPause struct {
	Enabled        bool `json:"enabled"`
	DelayInMinutes int  `json:"delayInMinutes"`
}

// DynamicExecutorAllocation holds the dynamic executor bounds.
type DynamicExecutorAllocation struct {
	Enabled      bool `json:"enabled"`
	MinExecutors int  `json:"minExecutors"`
	MaxExecutors int  `json:"maxExecutors"`
}

// LibraryRequirements references the pool's library manifest file.
type LibraryRequirements struct {
	Filename string `json:"filename"`
	Time     string `json:"time"`
}

// CustomLibrary is an uploaded workspace package attached to a pool. Only the
// count is reported.
type CustomLibrary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SparkJobDefinition is a raw Spark job definition record from the workspace
// data plane.
type SparkJobDefinition struct {
	Name       string                       `json:"name"`
	ID         string                       `json:"id"`
	Type       string                       `json:"type"`
	Etag       string                       `json:"etag"`
	Properties SparkJobDefinitionProperties `json:"properties"`
}

// SparkJobDefinitionProperties holds the nested job definition attributes.
type SparkJobDefinitionProperties struct {
	Description          string             `json:"description"`
	RequiredSparkVersion string             `json:"requiredSparkVersion"`
	Language             string             `json:"language"`
	TargetBigDataPool    *PoolReference     `json:"targetBigDataPool"`
	Folder               *Folder            `json:"folder"`
	JobProperties        *SparkJobProperties `json:"jobProperties"`
}

// Folder is the workspace folder containing a job definition.
type Folder struct {
	Name string `json:"name"`
}

// SparkJobProperties is the batch submission block of a job definition.
type SparkJobProperties struct {
	Name           string   `json:"name"`
	File           string   `json:"file"`
	ClassName      string   `json:"className"`
	DriverMemory   string   `json:"driverMemory"`
	DriverCores    int      `json:"driverCores"`
	ExecutorMemory string   `json:"executorMemory"`
	ExecutorCores  int      `json:"executorCores"`
	NumExecutors   int      `json:"numExecutors"`
	Args           []string `json:"args"`
	Jars           []string `json:"jars"`
	PyFiles        []string `json:"pyFiles"`
	Files          []string `json:"files"`
	Archives       []string `json:"archives"`
}
