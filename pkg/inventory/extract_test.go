package inventory

import (
	"reflect"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"

	"go.goms.io/synapse/spark-inventory/pkg/synapse"
)

func ptr[T any](v T) *T { return &v }

func TestParseResourceGroupFromID(t *testing.T) {
	tests := []struct {
		name       string
		resourceID string
		want       string
	}{
		{
			name:       "standard workspace ID",
			resourceID: "/subscriptions/sub-1/resourceGroups/my-rg/providers/Microsoft.Synapse/workspaces/ws1",
			want:       "my-rg",
		},
		{
			name:       "marker missing",
			resourceID: "/subscriptions/sub-1/providers/Microsoft.Synapse/workspaces/ws1",
			want:       "",
		},
		{
			name:       "marker is last segment",
			resourceID: "/subscriptions/sub-1/resourceGroups",
			want:       "",
		},
		{
			name:       "case-sensitive marker",
			resourceID: "/subscriptions/sub-1/resourcegroups/my-rg/providers/x",
			want:       "",
		},
		{
			name:       "empty ID",
			resourceID: "",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseResourceGroupFromID(tt.resourceID); got != tt.want {
				t.Errorf("ParseResourceGroupFromID(%q) = %q, want %q", tt.resourceID, got, tt.want)
			}
		})
	}
}

func TestWorkspaceDetailsFrom(t *testing.T) {
	ws := &armsynapse.Workspace{
		Name:     ptr("ws1"),
		ID:       ptr("/subscriptions/sub-1/resourceGroups/rg1/providers/Microsoft.Synapse/workspaces/ws1"),
		Location: ptr("westeurope"),
		Properties: &armsynapse.WorkspaceProperties{
			ProvisioningState:        ptr("Succeeded"),
			ManagedResourceGroupName: ptr("managed-rg"),
			WorkspaceUID:             ptr("uid-123"),
			PrivateEndpointConnections: []*armsynapse.PrivateEndpointConnection{
				{
					Name: ptr("pe1"),
					ID:   ptr("/pe/1"),
					Type: ptr("Microsoft.Synapse/workspaces/privateEndpointConnections"),
					Properties: &armsynapse.PrivateEndpointConnectionProperties{
						ProvisioningState: ptr("Succeeded"),
						PrivateEndpoint:   &armsynapse.PrivateEndpoint{ID: ptr("/endpoints/1")},
						PrivateLinkServiceConnectionState: &armsynapse.PrivateLinkServiceConnectionState{
							Status:      ptr("Approved"),
							Description: ptr("auto-approved"),
						},
					},
				},
			},
			ManagedVirtualNetworkSettings: &armsynapse.ManagedVirtualNetworkSettings{
				AllowedAADTenantIDsForLinking:     []*string{ptr("tenant-1")},
				LinkedAccessCheckOnTargetResource: ptr(true),
				PreventDataExfiltration:           ptr(true),
			},
		},
	}

	got := WorkspaceDetailsFrom(ws)

	if got.Name != "ws1" || got.Location != "westeurope" {
		t.Fatalf("unexpected identity fields: %+v", got)
	}
	if got.ProvisioningState != "Succeeded" || got.ManagedResourceGroup != "managed-rg" || got.WorkspaceUID != "uid-123" {
		t.Fatalf("unexpected property fields: %+v", got)
	}
	if len(got.PrivateEndpointConnections) != 1 {
		t.Fatalf("expected 1 private endpoint connection, got %d", len(got.PrivateEndpointConnections))
	}
	pe := got.PrivateEndpointConnections[0]
	if pe.Name != "pe1" || pe.PrivateEndpointID != "/endpoints/1" || pe.LinkStatus != "Approved" {
		t.Fatalf("unexpected private endpoint fields: %+v", pe)
	}
	if pe.ActionsRequired != "" {
		t.Fatalf("ActionsRequired = %q, want empty", pe.ActionsRequired)
	}
	if !reflect.DeepEqual(got.ManagedVNetSettings.AllowedAADTenants, []string{"tenant-1"}) {
		t.Fatalf("AllowedAADTenants = %v", got.ManagedVNetSettings.AllowedAADTenants)
	}
	if !got.ManagedVNetSettings.LinkedAccessCheck || !got.ManagedVNetSettings.PreventDataExfiltration {
		t.Fatalf("unexpected managed vnet settings: %+v", got.ManagedVNetSettings)
	}
}

func TestWorkspaceDetailsFromNilProperties(t *testing.T) {
	got := WorkspaceDetailsFrom(&armsynapse.Workspace{Name: ptr("bare")})

	if got.Name != "bare" {
		t.Fatalf("Name = %q", got.Name)
	}
	if got.PrivateEndpointConnections == nil || len(got.PrivateEndpointConnections) != 0 {
		t.Fatalf("PrivateEndpointConnections = %v, want empty slice", got.PrivateEndpointConnections)
	}
	if got.ManagedVNetSettings.AllowedAADTenants == nil {
		t.Fatalf("AllowedAADTenants is nil, want empty slice")
	}
}

func TestNotebookDetailsFrom(t *testing.T) {
	tests := []struct {
		name        string
		notebook    synapse.Notebook
		wantFormat  string
		wantPool    *PoolReferenceDetails
		wantSession bool
	}{
		{
			name: "all blocks present",
			notebook: synapse.Notebook{
				Name: "nb1",
				Properties: synapse.NotebookProperties{
					Description:   "etl notebook",
					Nbformat:      4,
					NbformatMinor: 2,
					BigDataPool:   &synapse.PoolReference{ReferenceName: "pool1", Type: "BigDataPoolReference"},
					SessionProperties: &synapse.SessionProperties{
						DriverMemory: "28g", DriverCores: 4,
						ExecutorMemory: "28g", ExecutorCores: 4, NumExecutors: 2,
					},
				},
			},
			wantFormat:  "v4.2",
			wantPool:    &PoolReferenceDetails{ReferenceName: "pool1", Type: "BigDataPoolReference"},
			wantSession: true,
		},
		{
			name: "optional blocks absent stay absent",
			notebook: synapse.Notebook{
				Name:       "nb2",
				Properties: synapse.NotebookProperties{Nbformat: 4, NbformatMinor: 0},
			},
			wantFormat:  "v4.0",
			wantPool:    nil,
			wantSession: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NotebookDetailsFrom(tt.notebook)

			if got.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", got.Format, tt.wantFormat)
			}
			if !reflect.DeepEqual(got.BigDataPool, tt.wantPool) {
				t.Errorf("BigDataPool = %+v, want %+v", got.BigDataPool, tt.wantPool)
			}
			if (got.SessionProperties != nil) != tt.wantSession {
				t.Errorf("SessionProperties present = %v, want %v", got.SessionProperties != nil, tt.wantSession)
			}
		})
	}
}

func TestBigDataPoolDetailsFrom(t *testing.T) {
	pool := synapse.BigDataPool{
		Name: "pool1",
		Properties: synapse.BigDataPoolProperties{
			SparkVersion:      "3.4",
			ProvisioningState: "Succeeded",
			NodeCount:         10,
			NodeSize:          "Medium",
			NodeSizeFamily:    "MemoryOptimized",
			AutoScale:         &synapse.AutoScale{Enabled: true, MinNodeCount: 3, MaxNodeCount: 10},
			AutoPause:         &synapse.AutoPause{Enabled: true, DelayInMinutes: 15},
			LibraryRequirements: &synapse.LibraryRequirements{
				Filename: "requirements.txt",
				Time:     "2024-01-15T10:00:00Z",
			},
			CustomLibraries: []synapse.CustomLibrary{{Name: "lib1.jar"}, {Name: "lib2.whl"}},
		},
	}

	got := BigDataPoolDetailsFrom(pool)

	if got.SparkVersion != "3.4" || got.NodeCount != 10 {
		t.Fatalf("unexpected scalar fields: %+v", got)
	}
	if got.AutoScale == nil || got.AutoScale.MinNodeCount != 3 || got.AutoScale.MaxNodeCount != 10 {
		t.Fatalf("AutoScale = %+v", got.AutoScale)
	}
	if got.AutoPause == nil || got.AutoPause.DelayMinutes != 15 {
		t.Fatalf("AutoPause = %+v", got.AutoPause)
	}
	if got.DynamicExecutorAllocation != nil {
		t.Fatalf("DynamicExecutorAllocation = %+v, want nil for absent block", got.DynamicExecutorAllocation)
	}
	if got.LibraryRequirements == nil || got.LibraryRequirements.LastUpdated != "2024-01-15T10:00:00Z" {
		t.Fatalf("LibraryRequirements = %+v", got.LibraryRequirements)
	}
	if got.CustomLibrariesCount != 2 {
		t.Fatalf("CustomLibrariesCount = %d, want 2", got.CustomLibrariesCount)
	}
}

func TestSparkJobDefinitionDetailsFrom(t *testing.T) {
	job := synapse.SparkJobDefinition{
		Name: "job1",
		ID:   "/jobs/1",
		Type: "Microsoft.Synapse/workspaces/sparkJobDefinitions",
		Etag: "etag-1",
		Properties: synapse.SparkJobDefinitionProperties{
			Description:          "nightly batch",
			RequiredSparkVersion: "3.3",
			Language:             "scala",
			TargetBigDataPool:    &synapse.PoolReference{ReferenceName: "pool1", Type: "BigDataPoolReference"},
			Folder:               &synapse.Folder{Name: "batch/nightly"},
			JobProperties: &synapse.SparkJobProperties{
				Name:      "job1",
				File:      "abfss://jobs@store.dfs.core.windows.net/main.jar",
				ClassName: "com.example.Main",
				Jars:      []string{"dep.jar"},
			},
		},
	}

	got := SparkJobDefinitionDetailsFrom(job)

	if got.RequiredSparkVersion != "3.3" || got.Etag != "etag-1" {
		t.Fatalf("unexpected scalar fields: %+v", got)
	}
	if got.Folder == nil || *got.Folder != "batch/nightly" {
		t.Fatalf("Folder = %v", got.Folder)
	}
	jp := got.JobProperties
	if jp == nil {
		t.Fatalf("JobProperties is nil")
	}
	if jp.Language != "scala" {
		t.Fatalf("Language = %q, want %q", jp.Language, "scala")
	}
	// Absent dependency lists become empty, present ones are preserved.
	if !reflect.DeepEqual(jp.Jars, []string{"dep.jar"}) {
		t.Fatalf("Jars = %v", jp.Jars)
	}
	for name, list := range map[string][]string{"Args": jp.Args, "PyFiles": jp.PyFiles, "Files": jp.Files, "Archives": jp.Archives} {
		if list == nil || len(list) != 0 {
			t.Fatalf("%s = %v, want empty slice", name, list)
		}
	}
}

func TestSparkJobDefinitionDetailsFromAbsentBlocks(t *testing.T) {
	got := SparkJobDefinitionDetailsFrom(synapse.SparkJobDefinition{Name: "bare"})

	if got.TargetBigDataPool != nil {
		t.Errorf("TargetBigDataPool = %+v, want nil", got.TargetBigDataPool)
	}
	if got.Folder != nil {
		t.Errorf("Folder = %v, want nil", got.Folder)
	}
	if got.JobProperties != nil {
		t.Errorf("JobProperties = %+v, want nil", got.JobProperties)
	}
}
