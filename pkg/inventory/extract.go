package inventory

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"github.com/Azure/go-autorest/autorest/to"

	"go.goms.io/synapse/spark-inventory/pkg/synapse"
)

// resourceGroupsMarker is the ARM resource ID path segment preceding the
// resource group name.
const resourceGroupsMarker = "resourceGroups"

// ParseResourceGroupFromID extracts the resource group name from an ARM
// resource ID. It returns "" when the marker segment is not present; it
// never fails.
func ParseResourceGroupFromID(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if part == resourceGroupsMarker && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// WorkspaceDetailsFrom projects an SDK workspace record into the flat
// summary shape.
func WorkspaceDetailsFrom(ws *armsynapse.Workspace) WorkspaceDetails {
	details := WorkspaceDetails{
		Name:                       to.String(ws.Name),
		ID:                         to.String(ws.ID),
		Location:                   to.String(ws.Location),
		PrivateEndpointConnections: []PrivateEndpointConnectionDetails{},
		ManagedVNetSettings: ManagedVNetSettings{
			AllowedAADTenants: []string{},
		},
	}

	props := ws.Properties
	if props == nil {
		return details
	}

	details.ProvisioningState = to.String(props.ProvisioningState)
	details.ManagedResourceGroup = to.String(props.ManagedResourceGroupName)
	details.WorkspaceUID = to.String(props.WorkspaceUID)

	for _, pe := range props.PrivateEndpointConnections {
		if pe == nil {
			continue
		}
		conn := PrivateEndpointConnectionDetails{
			Name: to.String(pe.Name),
			ID:   to.String(pe.ID),
			Type: to.String(pe.Type),
		}
		if peProps := pe.Properties; peProps != nil {
			conn.ProvisioningState = to.String(peProps.ProvisioningState)
			if peProps.PrivateEndpoint != nil {
				conn.PrivateEndpointID = to.String(peProps.PrivateEndpoint.ID)
			}
			if state := peProps.PrivateLinkServiceConnectionState; state != nil {
				conn.LinkStatus = to.String(state.Status)
				conn.ActionsRequired = to.String(state.ActionsRequired)
				conn.Description = to.String(state.Description)
			}
		}
		details.PrivateEndpointConnections = append(details.PrivateEndpointConnections, conn)
	}

	if mvs := props.ManagedVirtualNetworkSettings; mvs != nil {
		for _, tenant := range mvs.AllowedAADTenantIDsForLinking {
			if tenant != nil {
				details.ManagedVNetSettings.AllowedAADTenants = append(details.ManagedVNetSettings.AllowedAADTenants, *tenant)
			}
		}
		details.ManagedVNetSettings.LinkedAccessCheck = to.Bool(mvs.LinkedAccessCheckOnTargetResource)
		details.ManagedVNetSettings.PreventDataExfiltration = to.Bool(mvs.PreventDataExfiltration)
	}

	return details
}

// NotebookDetailsFrom projects a raw notebook record into the flat summary
// shape.
func NotebookDetailsFrom(nb synapse.Notebook) NotebookDetails {
	props := nb.Properties

	details := NotebookDetails{
		Name:        nb.Name,
		Description: props.Description,
		Format:      fmt.Sprintf("v%d.%d", props.Nbformat, props.NbformatMinor),
	}

	if props.BigDataPool != nil {
		details.BigDataPool = &PoolReferenceDetails{
			ReferenceName: props.BigDataPool.ReferenceName,
			Type:          props.BigDataPool.Type,
		}
	}

	if props.SessionProperties != nil {
		details.SessionProperties = &SessionPropertiesDetails{
			DriverMemory:   props.SessionProperties.DriverMemory,
			DriverCores:    props.SessionProperties.DriverCores,
			ExecutorMemory: props.SessionProperties.ExecutorMemory,
			ExecutorCores:  props.SessionProperties.ExecutorCores,
			NumExecutors:   props.SessionProperties.NumExecutors,
		}
	}

	return details
}

// BigDataPoolDetailsFrom projects a raw Spark pool record into the flat
// summary shape.
func BigDataPoolDetailsFrom(pool synapse.BigDataPool) BigDataPoolDetails {
	props := pool.Properties

	details := BigDataPoolDetails{
		Name:                 pool.Name,
		SparkVersion:         props.SparkVersion,
		ProvisioningState:    props.ProvisioningState,
		NodeCount:            props.NodeCount,
		NodeSize:             props.NodeSize,
		NodeSizeFamily:       props.NodeSizeFamily,
		CustomLibrariesCount: len(props.CustomLibraries),
	}

	if props.AutoScale != nil {
		details.AutoScale = &AutoScaleDetails{
			Enabled:      props.AutoScale.Enabled,
			MinNodeCount: props.AutoScale.MinNodeCount,
			MaxNodeCount: props.AutoScale.MaxNodeCount,
		}
	}

	if props.AutoPause != nil {
		details.AutoPause = &AutoPauseDetails{
			Enabled:      props.AutoPause.Enabled,
			DelayMinutes: props.AutoPause.DelayInMinutes,
		}
	}

	if props.DynamicExecutorAllocation != nil {
		details.DynamicExecutorAllocation = &DynamicExecutorAllocationDetails{
			Enabled:      props.DynamicExecutorAllocation.Enabled,
			MinExecutors: props.DynamicExecutorAllocation.MinExecutors,
			MaxExecutors: props.DynamicExecutorAllocation.MaxExecutors,
		}
	}

	if props.LibraryRequirements != nil {
		details.LibraryRequirements = &LibraryRequirementsDetails{
			Filename:    props.LibraryRequirements.Filename,
			LastUpdated: props.LibraryRequirements.Time,
		}
	}

	return details
}

// SparkJobDefinitionDetailsFrom projects a raw Spark job definition record
// into the flat summary shape.
func SparkJobDefinitionDetailsFrom(job synapse.SparkJobDefinition) SparkJobDefinitionDetails {
	props := job.Properties

	details := SparkJobDefinitionDetails{
		Name:                 job.Name,
		ID:                   job.ID,
		Type:                 job.Type,
		Etag:                 job.Etag,
		Description:          props.Description,
		RequiredSparkVersion: props.RequiredSparkVersion,
	}

	if props.TargetBigDataPool != nil {
		details.TargetBigDataPool = &PoolReferenceDetails{
			ReferenceName: props.TargetBigDataPool.ReferenceName,
			Type:          props.TargetBigDataPool.Type,
		}
	}

	if props.Folder != nil {
		folder := props.Folder.Name
		details.Folder = &folder
	}

	if props.JobProperties != nil {
		details.JobProperties = &JobPropertiesDetails{
			Name:           props.JobProperties.Name,
			File:           props.JobProperties.File,
			ClassName:      props.JobProperties.ClassName,
			Language:       props.Language,
			DriverMemory:   props.JobProperties.DriverMemory,
			DriverCores:    props.JobProperties.DriverCores,
			ExecutorMemory: props.JobProperties.ExecutorMemory,
			ExecutorCores:  props.JobProperties.ExecutorCores,
			NumExecutors:   props.JobProperties.NumExecutors,
			Args:           emptyIfNil(props.JobProperties.Args),
			Jars:           emptyIfNil(props.JobProperties.Jars),
			PyFiles:        emptyIfNil(props.JobProperties.PyFiles),
			Files:          emptyIfNil(props.JobProperties.Files),
			Archives:       emptyIfNil(props.JobProperties.Archives),
		}
	}

	return details
}

// emptyIfNil keeps dependency-file lists as [] rather than null in exports.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
