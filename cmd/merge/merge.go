// Package merge handles the per-period merge command.
package merge

import (
	"npatel/merge-csv/cmd/root"
	mergeengine "npatel/merge-csv/internal/merge"

	"github.com/spf13/cobra"
)

// Cmd represents the merge command.
var Cmd = &cobra.Command{
	Use:   "merge <period-folder>",
	Short: "Merge and categorize one period folder",
	Long: `Merge reads every bank export file in the named period folder under the
accounts directory, deduplicates the rows, assigns categories, and writes
<period>_combined.csv, merged.csv and audit.json into the folder.`,
	Args: cobra.ExactArgs(1),
	RunE: mergeFunc,
}

func mergeFunc(cmd *cobra.Command, args []string) error {
	engine := mergeengine.NewEngine(root.Cfg, root.Logger())
	result, err := engine.Run(args[0])
	if err != nil {
		return err
	}

	root.Log.Infof("Merged %d transactions from %d file(s). Duplicates skipped: %d. Ignored: %d.",
		len(result.Transactions), result.FilesProcessed, result.DuplicateCount, result.IgnoredCount)
	root.Log.Infof("Wrote %s, %s, %s", result.CombinedPath, result.MergedPath, result.AuditPath)
	return nil
}
