package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	formsync "github.com/goliatone/go-formsync"
	"github.com/goliatone/go-formsync/internal/prompt"
	"github.com/goliatone/go-formsync/pkg/orchestrator"
	"github.com/goliatone/go-formsync/pkg/report"
	"github.com/goliatone/go-formsync/pkg/settings"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

func main() {
	cfgPath := flag.String("config", "", "settings file, JSON or YAML")
	lang := flag.String("lang", "", "template language block to sync from (default en-us)")
	dryRun := flag.Bool("dry-run", false, "report pending updates without writing anything")
	sanitize := flag.Bool("sanitize", false, "strip markup from template labels before applying")
	confirm := flag.Bool("confirm", false, "ask before writing updates")
	reportTemplate := flag.String("report-template", "", "custom diff template file")
	noColor := flag.Bool("no-color", false, "disable ANSI styling")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	templatePath := flag.Arg(0)
	translationsPath := flag.Arg(1)

	cfg := settings.Default()
	if *cfgPath != "" {
		loaded, err := settings.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		cfg = loaded
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if *sanitize {
		cfg.SanitizeLabels = true
	}
	if *confirm {
		cfg.Confirm = true
	}
	if *reportTemplate != "" {
		cfg.ReportTemplate = *reportTemplate
	}
	if *noColor {
		cfg.NoColor = true
	}

	if _, err := os.Stat(templatePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: webform template not found: %s\n", templatePath)
		os.Exit(1)
	}
	if _, err := os.Stat(translationsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: translations file not found: %s\n", translationsPath)
		os.Exit(1)
	}

	reporterOptions := []report.Option{report.WithColor(!cfg.NoColor)}
	if cfg.ReportTemplate != "" {
		reporterOptions = append(reporterOptions, report.WithTemplateFile(cfg.ReportTemplate))
	}
	reporter, err := report.New(reporterOptions...)
	if err != nil {
		log.Fatalf("Failed to initialize reporter: %v", err)
	}

	options := []orchestrator.Option{orchestrator.WithLanguage(cfg.Language)}
	if cfg.SanitizeLabels {
		options = append(options, orchestrator.WithSanitizedLabels())
	}
	if *dryRun {
		options = append(options, orchestrator.WithDryRun())
	}
	if cfg.Confirm {
		options = append(options, orchestrator.WithConfirmFunc(func(ctx context.Context, message string) (bool, error) {
			return prompt.Confirm(ctx, message, false)
		}))
	}

	ctx := context.Background()

	reporter.Progressf("Loading webform template: %s", templatePath)
	reporter.Progressf("Loading translations: %s", translationsPath)

	result, err := formsync.New(options...).Run(ctx, formsync.Request{
		TemplatePath:     templatePath,
		TranslationsPath: translationsPath,
	})
	if err != nil {
		var missing *syncer.MissingTranslationsError
		switch {
		case errors.As(err, &missing):
			reporter.Failure(fmt.Sprintf("Could not find %s translations in webform", missing.Language))
		case errors.Is(err, prompt.ErrAborted):
			reporter.Failure("Aborted by operator")
		default:
			reporter.Failure(err.Error())
		}
		os.Exit(1)
	}

	reporter.SourceSummary(result.Sync)

	if !result.Sync.Changed() {
		reporter.InSync()
		return
	}

	if err := reporter.Diff(result.Sync); err != nil {
		reporter.Failure(err.Error())
		os.Exit(1)
	}

	switch {
	case *dryRun:
		reporter.Progressf("\nDry run: no files were written")
	case result.Declined:
		reporter.Progressf("\nDeclined: no files were written")
	default:
		reporter.Progressf("\nCreated backup: %s", result.BackupPath)
		reporter.Progressf("Wrote updates to: %s", translationsPath)
		reporter.Updated(len(result.Sync.Updates))
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Sync field translations with labels from a webform template.

The template's formTranslations block is the source of truth: its labels
always supersede the manually-maintained translations.

Usage:
  formsync-cli [flags] <webform_template.json> <field_translations.json>

Flags:
`)
	flag.PrintDefaults()
	fmt.Fprint(os.Stderr, `
Example:
  formsync-cli webform-template-123.json field_translations.json
`)
}
