// Package classify handles one-off description classification, useful for
// checking what the waterfall would decide before editing the rule tables.
package classify

import (
	"fmt"

	"npatel/merge-csv/cmd/root"
	"npatel/merge-csv/internal/categorizer"
	"npatel/merge-csv/internal/corpus"
	"npatel/merge-csv/internal/store"

	"github.com/spf13/cobra"
)

var description string

// Cmd represents the classify command.
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single transaction description",
	Long: `Classify runs the categorization waterfall for one description using the
configured mapping, rules and training history, and prints the category with
the tier that decided it.`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to classify")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		panic(err)
	}
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	logger := root.Logger()
	accountsDir := root.Cfg.Accounts.Directory

	rs := store.NewRuleStore(accountsDir, logger)
	mapping := rs.LoadMapping()
	rules, categories := rs.LoadRules()

	c := categorizer.New(categorizer.Options{
		Mapping:             mapping,
		Rules:               rules,
		Categories:          categories,
		ConfidenceThreshold: root.Cfg.Classifier.ConfidenceThreshold,
		MinTrainingSamples:  root.Cfg.Classifier.MinTrainingSamples,
		Cache:               categorizer.NewModelCache(accountsDir, logger),
	}, logger)

	// No current period to exclude: every historical folder may contribute.
	builder := corpus.NewBuilder(accountsDir, "", root.Cfg.Classifier.HistoryPeriods, logger)
	c.Train(builder.Build(mapping))

	result := c.Categorize(description)
	fmt.Printf("%s (via %s)\n", result.Category, result.Provenance)
	return nil
}
