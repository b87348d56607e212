// Package formsync keeps a manually-maintained field translations file in
// sync with the authoritative labels embedded in a webform template. The
// template always wins: for every field key present on both sides, the
// template's label overwrites the target's, the previous target state is
// backed up next to it, and every change is reported.
package formsync

import (
	"context"

	"github.com/goliatone/go-formsync/pkg/orchestrator"
	"github.com/goliatone/go-formsync/pkg/syncer"
)

// Request describes the inputs of one sync run.
type Request = orchestrator.Request

// Result is the outcome of one run.
type Result = orchestrator.Result

// Update records a single field whose label changed.
type Update = syncer.Update

// MissingTranslationsError reports a template without a usable language
// block; match it with errors.As to distinguish the structural failure from
// a run that simply found nothing to change.
type MissingTranslationsError = syncer.MissingTranslationsError

// Option customises a run.
type Option = orchestrator.Option

// WithLanguage selects the authoritative template language block.
var WithLanguage = orchestrator.WithLanguage

// WithSanitizedLabels strips markup from authoritative labels.
var WithSanitizedLabels = orchestrator.WithSanitizedLabels

// WithDryRun computes and reports updates without writing.
var WithDryRun = orchestrator.WithDryRun

// New exposes the orchestrator constructor from the top-level module.
func New(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Sync loads both documents, applies the authoritative labels, and persists
// the result with a backup. It is the simplest entry point for callers that
// just want one run.
func Sync(ctx context.Context, templatePath, translationsPath string, options ...Option) (*Result, error) {
	run := orchestrator.New(options...)
	return run.Run(ctx, Request{
		TemplatePath:     templatePath,
		TranslationsPath: translationsPath,
	})
}
