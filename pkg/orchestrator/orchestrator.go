// Package orchestrator wires the loader → sync engine → writer pipeline,
// providing a single entry point with dependency-injection friendly options.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formsync/pkg/syncer"
	"github.com/goliatone/go-formsync/pkg/translations"
	"github.com/goliatone/go-formsync/pkg/webform"
)

// ConfirmFunc asks the operator whether pending updates should be written.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLanguage selects the authoritative template language block.
func WithLanguage(code string) Option {
	return func(o *Orchestrator) {
		if code != "" {
			o.language = code
		}
	}
}

// WithSanitizedLabels strips markup from authoritative labels before they
// are compared and applied.
func WithSanitizedLabels() Option {
	return func(o *Orchestrator) {
		o.sanitize = true
	}
}

// WithDryRun computes and reports updates without touching the filesystem.
func WithDryRun() Option {
	return func(o *Orchestrator) {
		o.dryRun = true
	}
}

// WithConfirmFunc installs an interactive gate between the diff and the
// write phase. Declining is not an error; the run ends with nothing written.
func WithConfirmFunc(confirm ConfirmFunc) Option {
	return func(o *Orchestrator) {
		o.confirm = confirm
	}
}

// Orchestrator coordinates one full sync run. Phases are strictly
// sequential: load both documents, compute and apply overwrites in memory,
// then (only when something changed) back up the on-disk target and replace
// it. The backup and the target write are two separate writes, not a
// transaction; an interruption between them leaves the backup behind with
// the target still at its previous content.
type Orchestrator struct {
	language string
	sanitize bool
	dryRun   bool
	confirm  ConfirmFunc
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{language: syncer.DefaultLanguage}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Request describes the inputs of one sync run.
type Request struct {
	// TemplatePath locates the webform template (read-only source of truth).
	TemplatePath string

	// TranslationsPath locates the manually-maintained translations file
	// (the mutable target).
	TranslationsPath string
}

// Result is the outcome of one run.
type Result struct {
	// Sync holds the engine output: label counts and ordered update records.
	Sync *syncer.Result

	// BackupPath is where the pre-run target state was copied, empty when no
	// write happened.
	BackupPath string

	// Written reports whether the target file was replaced.
	Written bool

	// Declined reports that pending updates existed but the operator said no.
	Declined bool
}

// Run executes the pipeline. Structural failures (no usable language block)
// surface as *syncer.MissingTranslationsError before any mutation; zero
// pending updates is a success that performs no filesystem write at all.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	if req.TemplatePath == "" || req.TranslationsPath == "" {
		return nil, errors.New("orchestrator: template and translations paths are required")
	}

	source, err := webform.Load(req.TemplatePath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := translations.Load(req.TranslationsPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engineOptions := []syncer.Option{syncer.WithLanguage(o.language)}
	if o.sanitize {
		engineOptions = append(engineOptions, syncer.WithSanitizedLabels())
	}

	syncResult, err := syncer.New(engineOptions...).Sync(target, source)
	if err != nil {
		return nil, err
	}

	result := &Result{Sync: syncResult}
	if !syncResult.Changed() || o.dryRun {
		return result, nil
	}

	if o.confirm != nil {
		message := fmt.Sprintf("Write %d update(s) to %s?", len(syncResult.Updates), req.TranslationsPath)
		ok, err := o.confirm(ctx, message)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Declined = true
			return result, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	backupPath, err := translations.WriteBackup(req.TranslationsPath)
	if err != nil {
		return nil, err
	}
	result.BackupPath = backupPath

	if err := target.WriteFile(req.TranslationsPath); err != nil {
		return nil, err
	}
	result.Written = true

	return result, nil
}
