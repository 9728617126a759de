// Package merge implements the per-period merge run: it combines all bank
// export files of one period folder into a canonical ordered transaction
// list, deduplicates within and across files, normalizes vendor names,
// assigns categories through the classification waterfall, and writes the
// three output artifacts.
package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"npatel/merge-csv/internal/categorizer"
	"npatel/merge-csv/internal/common"
	"npatel/merge-csv/internal/config"
	"npatel/merge-csv/internal/corpus"
	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"
	"npatel/merge-csv/internal/normalize"
	"npatel/merge-csv/internal/reader"
	"npatel/merge-csv/internal/store"

	"github.com/shopspring/decimal"
)

// Result summarizes one finished merge run.
type Result struct {
	Transactions   []models.Transaction
	Credits        decimal.Decimal
	Debits         decimal.Decimal
	DuplicateCount int
	IgnoredCount   int
	FilesProcessed int
	Tiers          models.TierCounts
	CombinedPath   string
	MergedPath     string
	AuditPath      string
}

// Engine runs merges against one accounts directory.
type Engine struct {
	accountsDir string
	store       *store.RuleStore
	cfg         *config.Config
	logger      logging.Logger
}

// NewEngine creates a merge engine. The store is rooted at the configured
// accounts directory.
func NewEngine(cfg *config.Config, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	accountsDir := cfg.Accounts.Directory
	return &Engine{
		accountsDir: accountsDir,
		store:       store.NewRuleStore(accountsDir, logger),
		cfg:         cfg,
		logger:      logger,
	}
}

// Run merges one period folder end to end. All validation happens before the
// first output byte is written: a failed run leaves the period folder
// untouched.
func (e *Engine) Run(period string) (*Result, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return nil, fmt.Errorf("period folder name cannot be empty")
	}
	if e.accountsDir == "" {
		return nil, fmt.Errorf("accounts directory is not configured (set MERGE_ACCOUNTS_DIR or EXPENSE_REPORTS_ACCOUNTS_DIR)")
	}

	periodDir := filepath.Join(e.accountsDir, period)
	info, err := os.Stat(periodDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("period folder not found: %s", periodDir)
	}

	profile := e.store.LoadProfile()
	files, err := filepath.Glob(filepath.Join(periodDir, profile.FilePattern))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", profile.FilePattern, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", profile.FilePattern, periodDir)
	}

	e.logger.Info("Merging period",
		logging.Field{Key: logging.FieldPeriod, Value: period},
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	ignoreFilter := normalize.NewIgnoreFilter(e.store.LoadIgnoreList())
	aliases, aliasKeys := e.store.LoadAliases()
	rewriter := normalize.NewAliasRewriter(aliases, aliasKeys)

	mapping := e.store.LoadMapping()
	rules, categories := e.store.LoadRules()

	classifier := categorizer.New(categorizer.Options{
		Mapping:             mapping,
		Rules:               rules,
		Categories:          categories,
		ConfidenceThreshold: e.cfg.Classifier.ConfidenceThreshold,
		MinTrainingSamples:  e.cfg.Classifier.MinTrainingSamples,
		Cache:               categorizer.NewModelCache(e.accountsDir, e.logger),
	}, e.logger)

	builder := corpus.NewBuilder(e.accountsDir, period, e.cfg.Classifier.HistoryPeriods, e.logger)
	classifier.Train(builder.Build(mapping))

	result, err := e.mergeFiles(files, profile, ignoreFilter)
	if err != nil {
		return nil, err
	}

	// Sort on the raw descriptions, then rewrite vendor names: alias edits
	// must not change the canonical order.
	sort.SliceStable(result.Transactions, func(i, j int) bool {
		a, b := &result.Transactions[i], &result.Transactions[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Description < b.Description
	})

	for i := range result.Transactions {
		tx := &result.Transactions[i]
		tx.Description = rewriter.Rewrite(tx.Description)
		classification := classifier.Categorize(tx.Description)
		tx.Category = classification.Category
		tx.Provenance = classification.Provenance
	}
	result.Tiers = classifier.Counts()

	if err := e.writeOutputs(periodDir, period, result); err != nil {
		return nil, err
	}

	result.Tiers.LogSummary(e.logger)
	e.logger.Info("Merge complete",
		logging.Field{Key: logging.FieldPeriod, Value: period},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldDuplicates, Value: result.DuplicateCount},
		logging.Field{Key: logging.FieldIgnored, Value: result.IgnoredCount})

	return result, nil
}

// mergeFiles reads every export file and applies the ignore filter and the
// two-level dedup policy. Totals include every non-ignored row, duplicates
// too, so they reconcile against the raw bank files.
func (e *Engine) mergeFiles(files []string, profile store.Profile, ignoreFilter *normalize.IgnoreFilter) (*Result, error) {
	cols := reader.ColumnMapping{
		Date:        profile.DateCol,
		Description: profile.DescCol,
		Debit:       profile.DebitCol,
		Credit:      profile.CreditCol,
		Account:     profile.AccountCol,
	}

	result := &Result{FilesProcessed: len(files)}
	claimed := make(map[models.DedupKey]int)

	for fileIdx, path := range files {
		rows, err := reader.ReadExportFile(path, cols, e.logger)
		if err != nil {
			return nil, err
		}

		seenInFile := make(map[models.DedupKey]bool)
		for i := range rows {
			row := rows[i]
			if ignoreFilter.ShouldIgnore(row.Description) {
				result.IgnoredCount++
				continue
			}
			result.Credits = result.Credits.Add(row.Credit)
			result.Debits = result.Debits.Add(row.Debit)

			key := row.Key()
			if seenInFile[key] {
				result.DuplicateCount++
				continue
			}
			seenInFile[key] = true

			if owner, ok := claimed[key]; ok && owner != fileIdx {
				result.DuplicateCount++
				continue
			}
			claimed[key] = fileIdx
			result.Transactions = append(result.Transactions, row)
		}
	}

	return result, nil
}

// writeOutputs writes the combined table, the simplified table, and the
// audit report into the period folder.
func (e *Engine) writeOutputs(periodDir, period string, result *Result) error {
	combined := make([]models.CombinedRow, len(result.Transactions))
	simplified := make([]models.SimplifiedRow, len(result.Transactions))
	for i := range result.Transactions {
		combined[i] = result.Transactions[i].ToCombinedRow()
		simplified[i] = result.Transactions[i].ToSimplifiedRow()
	}

	result.CombinedPath = filepath.Join(periodDir, fmt.Sprintf("%s_combined.csv", period))
	if err := common.WriteCSVFile(combined, result.CombinedPath); err != nil {
		return fmt.Errorf("error writing combined output: %w", err)
	}

	result.MergedPath = filepath.Join(periodDir, "merged.csv")
	if err := common.WriteCSVFile(simplified, result.MergedPath); err != nil {
		return fmt.Errorf("error writing merged output: %w", err)
	}

	report := models.NewAuditReport(
		result.Credits, result.Debits,
		result.DuplicateCount, result.IgnoredCount,
		result.FilesProcessed, len(result.Transactions),
		result.Tiers,
	)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding audit report: %w", err)
	}
	result.AuditPath = filepath.Join(periodDir, "audit.json")
	if err := os.WriteFile(result.AuditPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing audit report: %w", err)
	}

	return nil
}
