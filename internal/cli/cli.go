// Package cli wires the pipeline components into the command surface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"i18n-pipeline/internal/backup"
	"i18n-pipeline/internal/catalog"
	"i18n-pipeline/internal/config"
	"i18n-pipeline/internal/extract"
	"i18n-pipeline/internal/lookup"
	"i18n-pipeline/internal/rewrite"
	"i18n-pipeline/internal/translate"
	"i18n-pipeline/internal/walker"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "i18n-pipeline",
		Short: "Batch internationalization pipeline for static HTML sites",
		Long: "Extracts visible text from HTML documents, builds a categorized\n" +
			"translation catalog with stable keys, translates values through a\n" +
			"hand-maintained dictionary, and annotates the HTML with data-i18n\n" +
			"key references.",
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(translateCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(rewriteCmd())
	rootCmd.AddCommand(restoreCmd())
	rootCmd.AddCommand(lookupCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <directory>",
		Short: "Extract visible text from HTML files and update the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0])
		},
	}
}

func translateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate",
		Short: "Resolve catalog values through the translation dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate()
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [catalog...]",
		Short: "Report catalog values still containing Korean text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
}

func rewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <directory>",
		Short: "Annotate HTML files with data-i18n key references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			limit, _ := cmd.Flags().GetInt("limit")
			return runRewrite(args[0], dryRun, limit)
		},
	}
	cmd.Flags().Bool("dry-run", false, "Preview replacements without writing files")
	cmd.Flags().Int("limit", 0, "Process at most N files (0 = all)")
	return cmd
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <directory>",
		Short: "Restore original HTML files from backups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetBool("keep-backups")
			return runRestore(args[0], keep)
		},
	}
	cmd.Flags().Bool("keep-backups", false, "Leave backup files in place after restoring")
	return cmd
}

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [category.key...]",
		Short: "Resolve keys against the generated catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			return runLookup(args, lang)
		},
	}
	cmd.Flags().String("lang", "", "Language to resolve against (default ko)")
	return cmd
}

// runExtract handles the `extract` command.
func runExtract(inputDir string) error {
	cfg := config.Load()

	w, err := walker.New(cfg.ExcludeDirs)
	if err != nil {
		return err
	}
	files, err := w.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	cat, err := loadOrCreateCatalog(cfg)
	if err != nil {
		return err
	}

	extractor := extract.NewExtractor()
	agg := catalog.NewAggregate()
	records := 0
	parseErrors := 0

	for _, file := range files {
		recs, err := extractor.ExtractFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Extract failed")
			parseErrors++
			continue
		}
		agg.AddDocument(relPath(inputDir, file), recs)
		records += len(recs)
	}

	added := cat.Merge(agg, cfg.BoilerplateRatio)

	if err := cat.Save(cfg.CatalogPath); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	if err := cat.SaveFlat(cfg.FlatCatalogPath); err != nil {
		return fmt.Errorf("save flat catalog: %w", err)
	}

	for category, count := range cat.Metadata.Categories {
		log.Info().Str("category", category).Int("strings", count).Msg("Category")
	}
	log.Info().
		Int("files", len(files)).
		Int("parse_errors", parseErrors).
		Int("records", records).
		Int("unique", agg.Len()).
		Int("added", added).
		Int("total", cat.Len()).
		Str("catalog", cfg.CatalogPath).
		Msg("Extraction complete")

	return nil
}

// runTranslate handles the `translate` command.
func runTranslate() error {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	dict, err := translate.LoadDictionary(cfg.DictionaryPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}

	resolver := translate.NewResolver(dict, cfg.MinDictKeyRunes)
	translated, unresolved := resolver.ResolveCatalog(cat)

	if err := translated.Save(cfg.TranslatedCatalogPath); err != nil {
		return fmt.Errorf("save translated catalog: %w", err)
	}

	for _, path := range unresolved {
		log.Warn().Str("key", path).Msg("Needs manual translation")
	}
	log.Info().
		Int("entries", cat.Len()).
		Int("dictionary", len(dict)).
		Int("unresolved", len(unresolved)).
		Str("output", cfg.TranslatedCatalogPath).
		Msg("Translation complete")

	return nil
}

// runCheck handles the `check` command. Remaining Korean values are a
// data-quality signal, not a failure: exit status stays zero.
func runCheck(paths []string) error {
	cfg := config.Load()
	if len(paths) == 0 {
		paths = []string{cfg.CatalogPath, cfg.TranslatedCatalogPath}
	}

	total := 0
	for _, path := range paths {
		cat, err := catalog.Load(path)
		if err != nil {
			log.Error().Err(err).Str("catalog", path).Msg("Check failed")
			continue
		}
		findings := translate.Audit(cat)
		for _, f := range findings {
			log.Warn().Str("key", f.Path).Str("value", f.Value).Msg("Korean value")
		}
		log.Info().
			Str("catalog", path).
			Int("entries", cat.Len()).
			Int("korean_values", len(findings)).
			Msg("Checked catalog")
		total += len(findings)
	}

	log.Info().Int("korean_values", total).Msg("Check complete")
	return nil
}

// runRewrite handles the `rewrite` command. An unreadable catalog aborts
// before any document is touched; per-document failures are logged and
// skipped.
func runRewrite(inputDir string, dryRun bool, limit int) error {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	index := cat.ReverseIndex()
	log.Info().Int("keys", len(index)).Msg("Built reverse index")

	w, err := walker.New(cfg.ExcludeDirs)
	if err != nil {
		return err
	}
	files, err := w.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	rewriter := rewrite.NewRewriter(index)
	changed := 0
	replacements := 0
	failures := 0

	for _, file := range files {
		res, err := rewriter.RewriteFile(file, cfg.BackupSuffix, dryRun)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Rewrite failed")
			failures++
			continue
		}
		if res.Changed {
			changed++
		}
		if res.Replacements > 0 {
			log.Info().
				Str("file", relPath(inputDir, file)).
				Int("replacements", res.Replacements).
				Bool("written", res.Changed).
				Msg("Annotated document")
		}
		replacements += res.Replacements
	}

	summary := log.Info().
		Int("files", len(files)).
		Int("changed", changed).
		Int("failures", failures).
		Int("replacements", replacements)
	if dryRun {
		summary.Msg("Dry run complete, no files written")
	} else {
		summary.Str("backup_suffix", cfg.BackupSuffix).Msg("Rewrite complete")
	}

	return nil
}

// runLookup handles the `lookup` command: builds the runtime table from the
// generated catalogs and resolves the given dotted keys. Without keys it
// reports what the table holds.
func runLookup(keys []string, lang string) error {
	cfg := config.Load()

	table, err := loadLookupTable(cfg)
	if err != nil {
		return err
	}
	if lang != "" && !table.SetLanguage(lang) {
		return fmt.Errorf("unsupported language %q, have %v", lang, table.Languages())
	}

	if len(keys) == 0 {
		for _, cat := range table.Categories() {
			log.Info().
				Str("category", cat).
				Int("entries", len(table.Entries(cat))).
				Msg("Category")
		}
		log.Info().
			Strs("languages", table.Languages()).
			Str("active", table.Language()).
			Msg("Lookup table ready")
		return nil
	}

	for _, key := range keys {
		fmt.Printf("%s = %s\n", key, table.Resolve(key))
	}
	return nil
}

// loadLookupTable builds the runtime lookup table: the source catalog as
// "ko", plus the translated catalog as "en" when a translate run has
// produced one.
func loadLookupTable(cfg *config.Config) (*lookup.Table, error) {
	catalogs := make(map[string]*catalog.Catalog)

	src, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalogs["ko"] = src

	translated, err := catalog.Load(cfg.TranslatedCatalogPath)
	switch {
	case err == nil:
		catalogs["en"] = translated
	case os.IsNotExist(err):
		log.Info().Str("catalog", cfg.TranslatedCatalogPath).Msg("No translated catalog yet, ko only")
	default:
		return nil, fmt.Errorf("load translated catalog: %w", err)
	}

	return lookup.FromCatalogs("ko", catalogs), nil
}

// runRestore handles the `restore` command.
func runRestore(inputDir string, keep bool) error {
	cfg := config.Load()

	restored, err := backup.Restore(inputDir, cfg.BackupSuffix, keep)
	if err != nil {
		return fmt.Errorf("restore backups: %w", err)
	}

	log.Info().
		Int("restored", restored).
		Bool("backups_kept", keep).
		Msg("Restore complete")
	return nil
}

// loadOrCreateCatalog loads the persisted catalog, starting fresh only
// when the file does not exist yet. A corrupt catalog is fatal: silently
// starting over would reassign every key.
func loadOrCreateCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err == nil {
		log.Info().Str("catalog", cfg.CatalogPath).Int("entries", cat.Len()).Msg("Loaded existing catalog")
		return cat, nil
	}
	if os.IsNotExist(err) {
		log.Info().Str("catalog", cfg.CatalogPath).Msg("No existing catalog, starting fresh")
		return catalog.New(cfg.Project), nil
	}
	return nil, fmt.Errorf("load catalog: %w", err)
}

// relPath shortens a walker path (absolute) for logs and catalog metadata.
func relPath(root, path string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(abs, path)
	if err != nil {
		return path
	}
	return rel
}
