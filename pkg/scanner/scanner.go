package scanner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go.goms.io/synapse/spark-inventory/pkg/auth"
	"go.goms.io/synapse/spark-inventory/pkg/config"
	"go.goms.io/synapse/spark-inventory/pkg/inventory"
	"go.goms.io/synapse/spark-inventory/pkg/report"
	"go.goms.io/synapse/spark-inventory/pkg/synapse"
)

// Fetcher is the per-subscription listing surface consumed by the scanner.
// synapse.Client implements it; tests inject fakes.
type Fetcher interface {
	ListWorkspaces(ctx context.Context) ([]*armsynapse.Workspace, error)
	ListBigDataPools(ctx context.Context, resourceGroup, workspaceName string) ([]synapse.BigDataPool, error)
	ListNotebooks(ctx context.Context, workspaceName string) ([]synapse.Notebook, error)
	ListSparkJobDefinitions(ctx context.Context, workspaceName string) ([]synapse.SparkJobDefinition, error)
}

// FetcherFactory creates a Fetcher scoped to one subscription.
type FetcherFactory func(ctx context.Context, subscriptionID string) (Fetcher, error)

// Scanner walks the configured subscriptions sequentially, collecting the
// Synapse Spark inventory for each, streaming the console report as it goes
// and writing the JSON exports at the end of the run.
type Scanner struct {
	cfg        *config.Config
	logger     *logrus.Logger
	out        io.Writer
	reporter   *report.ConsoleReporter
	newFetcher FetcherFactory
}

// New creates a scanner that authenticates with the default Azure credential
// chain. The credential is created lazily on the first subscription.
func New(cfg *config.Config, logger *logrus.Logger) *Scanner {
	provider := auth.NewProvider()
	var cred azcore.TokenCredential

	factory := func(ctx context.Context, subscriptionID string) (Fetcher, error) {
		if cred == nil {
			c, err := provider.Credential()
			if err != nil {
				return nil, err
			}
			cred = c
		}
		return synapse.NewClient(subscriptionID, cred, logger)
	}

	return NewWith(cfg, logger, os.Stdout, factory)
}

// NewWith allows injecting the output writer and fetcher factory (primarily
// for tests).
func NewWith(cfg *config.Config, logger *logrus.Logger, out io.Writer, factory FetcherFactory) *Scanner {
	return &Scanner{
		cfg:        cfg,
		logger:     logger,
		out:        out,
		reporter:   report.NewConsoleReporter(out),
		newFetcher: factory,
	}
}

// Run processes every configured subscription in order, then decides the
// export shape: one success writes the single-subscription file; several
// successes write one file per success plus a consolidated file; zero
// successes write nothing and fail the run.
func (s *Scanner) Run(ctx context.Context) error {
	runID := uuid.New().String()
	subscriptionIDs := s.cfg.SubscriptionIDs

	s.logger.Infof("Starting Synapse Spark inventory scan %s", runID)
	fmt.Fprintf(s.out, "🚀 Found %d subscription(s) to scan:\n", len(subscriptionIDs))
	for _, id := range subscriptionIDs {
		fmt.Fprintf(s.out, "   • %s\n", id)
	}
	fmt.Fprintln(s.out)

	results := make([]inventory.SubscriptionResult, 0, len(subscriptionIDs))

	for i, subscriptionID := range subscriptionIDs {
		s.banner(fmt.Sprintf("PROCESSING SUBSCRIPTION %d/%d: %s", i+1, len(subscriptionIDs), subscriptionID))
		fmt.Fprintf(s.out, "🔍 Listing all Synapse workspaces in subscription %s...\n\n", subscriptionID)

		inv, err := s.processSubscription(ctx, subscriptionID)
		if err != nil {
			s.logger.Errorf("Error processing subscription %s: %v", subscriptionID, err)
			fmt.Fprintf(s.out, "❌ Error processing subscription %s: %v\n\n", subscriptionID, err)
			results = append(results, inventory.SubscriptionResult{SubscriptionID: subscriptionID, Err: err})
			continue
		}

		for _, wi := range inv.Workspaces {
			s.reporter.Workspace(wi)
		}
		s.reporter.SubscriptionSummary(inv)

		results = append(results, inventory.SubscriptionResult{SubscriptionID: subscriptionID, Inventory: inv})
	}

	if err := s.writeExports(results); err != nil {
		return err
	}

	return s.finalTally(runID, results)
}

// processSubscription performs the full fetch for one subscription. Any
// error, including child-fetch transport failures, fails the subscription;
// non-success child responses were already degraded to empty lists by the
// fetcher.
func (s *Scanner) processSubscription(ctx context.Context, subscriptionID string) (*inventory.SubscriptionInventory, error) {
	fetcher, err := s.newFetcher(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	workspaces, err := fetcher.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("no Synapse workspaces found in subscription %s", subscriptionID)
	}

	inv := &inventory.SubscriptionInventory{SubscriptionID: subscriptionID}

	for _, ws := range workspaces {
		if ws == nil {
			continue
		}
		details := inventory.WorkspaceDetailsFrom(ws)
		resourceGroup := inventory.ParseResourceGroupFromID(details.ID)

		rawNotebooks, err := fetcher.ListNotebooks(ctx, details.Name)
		if err != nil {
			return nil, err
		}
		rawPools, err := fetcher.ListBigDataPools(ctx, resourceGroup, details.Name)
		if err != nil {
			return nil, err
		}
		rawJobs, err := fetcher.ListSparkJobDefinitions(ctx, details.Name)
		if err != nil {
			return nil, err
		}

		notebooks := make([]inventory.NotebookDetails, 0, len(rawNotebooks))
		for _, nb := range rawNotebooks {
			notebooks = append(notebooks, inventory.NotebookDetailsFrom(nb))
		}
		pools := make([]inventory.BigDataPoolDetails, 0, len(rawPools))
		for _, pool := range rawPools {
			pools = append(pools, inventory.BigDataPoolDetailsFrom(pool))
		}
		jobs := make([]inventory.SparkJobDefinitionDetails, 0, len(rawJobs))
		for _, job := range rawJobs {
			jobs = append(jobs, inventory.SparkJobDefinitionDetailsFrom(job))
		}

		inv.Workspaces = append(inv.Workspaces, inventory.WorkspaceInventory{
			Details:            details,
			ResourceGroup:      resourceGroup,
			Notebooks:          notebooks,
			Pools:              pools,
			Jobs:               jobs,
			NotebooksByRuntime: inventory.CountNotebooksByRuntime(notebooks, pools),
			JobsByRuntime:      inventory.CountJobsByRuntime(jobs),
		})
	}

	return inv, nil
}

// writeExports writes the JSON export files according to how many
// subscriptions succeeded.
func (s *Scanner) writeExports(results []inventory.SubscriptionResult) error {
	s.banner("GENERATING JSON EXPORTS")

	var successes []inventory.SubscriptionResult
	for _, result := range results {
		if result.Succeeded() {
			successes = append(successes, result)
		}
	}

	now := time.Now()

	switch {
	case len(successes) == 0:
		fmt.Fprintln(s.out, "❌ No subscriptions were processed successfully. No JSON files created.")
		return nil

	case len(successes) == 1:
		path, err := report.WriteSubscriptionExport(s.cfg.OutputDir, successes[0].Inventory, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✅ Individual subscription data exported to: %s\n", path)
		return nil

	default:
		individualFiles := make([]string, 0, len(successes))
		for _, result := range successes {
			path, err := report.WriteSubscriptionExport(s.cfg.OutputDir, result.Inventory, now)
			if err != nil {
				return err
			}
			individualFiles = append(individualFiles, path)
			fmt.Fprintf(s.out, "✅ Individual subscription data exported to: %s\n", path)
		}

		consolidatedPath, err := report.WriteConsolidatedExport(s.cfg.OutputDir, results, now)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "✅ Consolidated data exported to: %s\n", consolidatedPath)

		fmt.Fprintf(s.out, "\n📊 EXPORT SUMMARY:\n")
		fmt.Fprintf(s.out, "   • Individual files: %d\n", len(individualFiles))
		fmt.Fprintf(s.out, "   • Consolidated file: 1\n")
		fmt.Fprintf(s.out, "   • Total files created: %d\n", len(individualFiles)+1)
		return nil
	}
}

// finalTally prints the configured/succeeded/failed counts and returns an
// error when nothing succeeded.
func (s *Scanner) finalTally(runID string, results []inventory.SubscriptionResult) error {
	var succeeded int
	var failedIDs []string
	for _, result := range results {
		if result.Succeeded() {
			succeeded++
		} else {
			failedIDs = append(failedIDs, result.SubscriptionID)
		}
	}

	fmt.Fprintf(s.out, "\n🎯 FINAL SUMMARY:\n")
	fmt.Fprintf(s.out, "   • Total subscriptions configured: %d\n", len(results))
	fmt.Fprintf(s.out, "   • Successfully processed: %d\n", succeeded)
	fmt.Fprintf(s.out, "   • Failed: %d\n", len(failedIDs))
	if len(failedIDs) > 0 {
		fmt.Fprintf(s.out, "   • Failed subscription(s): %s\n", strings.Join(failedIDs, ", "))
	}

	s.logger.Infof("Scan %s finished: %d/%d subscriptions succeeded", runID, succeeded, len(results))

	if succeeded == 0 {
		return fmt.Errorf("no subscriptions were processed successfully")
	}
	return nil
}

func (s *Scanner) banner(title string) {
	line := strings.Repeat("=", 80)
	fmt.Fprintf(s.out, "%s\n%s\n%s\n", line, title, line)
}
