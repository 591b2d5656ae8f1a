package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driving"
	"github.com/aideon-labs/aideon-tools/internal/core/services"
)

var syncFlags struct {
	from      string
	to        string
	input     string
	output    string
	context   string
	rdfFormat string
	expand    bool
	watch     bool
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise a dataset from one representation to another",
	Long: `Reads a dataset in the source representation and writes it in the
target representation. Formats: jsonld, xlsx, rdf.

With --watch the conversion re-runs whenever the input file changes.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncFlags.from, "from", "", "source format (jsonld, xlsx, rdf)")
	syncCmd.Flags().StringVar(&syncFlags.to, "to", "", "target format (jsonld, xlsx, rdf)")
	syncCmd.Flags().StringVarP(&syncFlags.input, "input", "i", "", "input file")
	syncCmd.Flags().StringVarP(&syncFlags.output, "output", "o", "", "output file")
	syncCmd.Flags().StringVar(&syncFlags.context, "context", "",
		"JSON file with an @context to embed in JSON-LD output")
	syncCmd.Flags().StringVar(&syncFlags.rdfFormat, "rdf-format", "",
		"RDF serialisation (ntriples, nquads); detected from the output extension when unset")
	syncCmd.Flags().BoolVar(&syncFlags.expand, "expand", false,
		"expand the JSON-LD input against its context before converting")
	syncCmd.Flags().BoolVar(&syncFlags.watch, "watch", false,
		"keep running and re-convert when the input changes")

	for _, flag := range []string{"from", "to", "input", "output"} {
		_ = syncCmd.MarkFlagRequired(flag)
	}

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	req, err := buildSyncRequest()
	if err != nil {
		return usageHint(cmd, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if syncFlags.watch {
		cmd.Printf("Watching %s, press Ctrl-C to stop...\n", req.Input)
		if err := syncService.Watch(ctx, req); err != nil && !errors.Is(err, context.Canceled) {
			return usageHint(cmd, fmt.Errorf("watch failed: %w", err))
		}
		return nil
	}

	result, err := syncService.Sync(ctx, req)
	if err != nil {
		return usageHint(cmd, fmt.Errorf("sync failed: %w", err))
	}

	cmd.Printf("Synchronised %d nodes from %s to %s in %s.\n",
		result.Nodes, req.From, req.To, result.Duration.Round(time.Millisecond))
	return nil
}

// usageHint prints the command usage for request-shaped failures so the
// user sees the flag syntax without re-running --help. Data errors pass
// through untouched.
func usageHint(cmd *cobra.Command, err error) error {
	if services.IsUsageError(err) {
		cmd.Println(cmd.UsageString())
	}
	return err
}

func buildSyncRequest() (driving.SyncRequest, error) {
	var req driving.SyncRequest

	from, err := domain.ParseDataFormat(syncFlags.from)
	if err != nil {
		return req, err
	}
	to, err := domain.ParseDataFormat(syncFlags.to)
	if err != nil {
		return req, err
	}

	return driving.SyncRequest{
		From:        from,
		To:          to,
		Input:       syncFlags.input,
		Output:      syncFlags.output,
		ContextPath: syncFlags.context,
		RDFFormat:   syncFlags.rdfFormat,
		Expand:      syncFlags.expand,
	}, nil
}
