package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsync/pkg/orchestrator"
	"github.com/goliatone/go-formsync/pkg/syncer"
	"github.com/goliatone/go-formsync/pkg/translations"
)

const templateFixture = `{
  "id": "webform-template-123",
  "formTranslations": {
    "en-us": {
      "name": "Full Name",
      "email": "Email Address"
    }
  }
}`

const targetFixture = `{
  "fields": {
    "name": "Full Nm",
    "email": "Email Address",
    "phone": "Phone"
  },
  "options": {"contact": "Contacto"}
}`

func writeFixtures(t *testing.T, template, target string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "webform-template.json")
	targetPath := filepath.Join(dir, "field_translations.json")
	if err := os.WriteFile(templatePath, []byte(template), 0o644); err != nil {
		t.Fatalf("write template fixture: %v", err)
	}
	if err := os.WriteFile(targetPath, []byte(target), 0o644); err != nil {
		t.Fatalf("write target fixture: %v", err)
	}
	return templatePath, targetPath
}

func TestRun_AppliesUpdatesAndBacksUp(t *testing.T) {
	templatePath, targetPath := writeFixtures(t, templateFixture, targetFixture)

	result, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Written {
		t.Fatalf("expected a write, got %+v", result)
	}
	if len(result.Sync.Updates) != 1 || result.Sync.Updates[0].Field != "name" {
		t.Fatalf("unexpected updates: %+v", result.Sync.Updates)
	}

	// Target now carries the authoritative label; untouched fields survive.
	updated, err := translations.Load(targetPath)
	if err != nil {
		t.Fatalf("load updated target: %v", err)
	}
	raw, _ := updated.Field("name")
	if string(raw) != `"Full Name"` {
		t.Fatalf("target not updated: %s", raw)
	}
	raw, _ = updated.Field("phone")
	if string(raw) != `"Phone"` {
		t.Fatalf("target-only field modified: %s", raw)
	}
	if diff := cmp.Diff([]string{"fields", "options"}, updated.Sections()); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}

	// Backup holds the pre-run state.
	backup, err := translations.Load(result.BackupPath)
	if err != nil {
		t.Fatalf("load backup: %v", err)
	}
	raw, _ = backup.Field("name")
	if string(raw) != `"Full Nm"` {
		t.Fatalf("backup should hold the pre-run value, got %s", raw)
	}
}

func TestRun_Idempotent(t *testing.T) {
	templatePath, targetPath := writeFixtures(t, templateFixture, targetFixture)

	ctx := context.Background()
	req := orchestrator.Request{TemplatePath: templatePath, TranslationsPath: targetPath}

	first, err := orchestrator.New().Run(ctx, req)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if !first.Written {
		t.Fatalf("first run should write")
	}

	afterFirst, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}

	second, err := orchestrator.New().Run(ctx, req)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.Written || second.Sync.Changed() {
		t.Fatalf("second run must be a no-op, got %+v", second)
	}

	afterSecond, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(afterFirst) != string(afterSecond) {
		t.Fatalf("target changed across a no-op run:\n%s\n---\n%s", afterFirst, afterSecond)
	}
}

func TestRun_NoOpWritesNothing(t *testing.T) {
	inSync := `{"fields": {"name": "Full Name", "email": "Email Address"}}`
	templatePath, targetPath := writeFixtures(t, templateFixture, inSync)

	before, _ := os.ReadFile(targetPath)

	result, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Written || result.Sync.Changed() {
		t.Fatalf("expected no-op, got %+v", result)
	}

	if _, err := os.Stat(translations.BackupPath(targetPath)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no-op run must not create a backup: %v", err)
	}
	after, _ := os.ReadFile(targetPath)
	if string(before) != string(after) {
		t.Fatalf("no-op run modified the target")
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	templatePath, targetPath := writeFixtures(t, templateFixture, targetFixture)
	before, _ := os.ReadFile(targetPath)

	result, err := orchestrator.New(orchestrator.WithDryRun()).Run(context.Background(), orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Written {
		t.Fatalf("dry run must not write")
	}
	if !result.Sync.Changed() {
		t.Fatalf("dry run should still report pending updates")
	}

	after, _ := os.ReadFile(targetPath)
	if string(before) != string(after) {
		t.Fatalf("dry run modified the target")
	}
	if _, err := os.Stat(translations.BackupPath(targetPath)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run must not create a backup: %v", err)
	}
}

func TestRun_StructuralFailureLeavesTargetUntouched(t *testing.T) {
	emptyBlock := `{"formTranslations": {"en-us": {}}}`
	templatePath, targetPath := writeFixtures(t, emptyBlock, targetFixture)
	before, _ := os.ReadFile(targetPath)

	_, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})

	var missing *syncer.MissingTranslationsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTranslationsError, got %v", err)
	}

	after, _ := os.ReadFile(targetPath)
	if string(before) != string(after) {
		t.Fatalf("structural failure modified the target")
	}
	if _, err := os.Stat(translations.BackupPath(targetPath)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("structural failure must not create a backup: %v", err)
	}
}

func TestRun_ConfirmDeclinedWritesNothing(t *testing.T) {
	templatePath, targetPath := writeFixtures(t, templateFixture, targetFixture)
	before, _ := os.ReadFile(targetPath)

	declined := orchestrator.WithConfirmFunc(func(context.Context, string) (bool, error) {
		return false, nil
	})
	result, err := orchestrator.New(declined).Run(context.Background(), orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !result.Declined || result.Written {
		t.Fatalf("expected declined result, got %+v", result)
	}

	after, _ := os.ReadFile(targetPath)
	if string(before) != string(after) {
		t.Fatalf("declined run modified the target")
	}
}

func TestRun_ConfirmAcceptedWrites(t *testing.T) {
	templatePath, targetPath := writeFixtures(t, templateFixture, targetFixture)

	accepted := orchestrator.WithConfirmFunc(func(context.Context, string) (bool, error) {
		return true, nil
	})
	result, err := orchestrator.New(accepted).Run(context.Background(), orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !result.Written || result.Declined {
		t.Fatalf("expected write after confirmation, got %+v", result)
	}
}

func TestRun_MissingInputs(t *testing.T) {
	dir := t.TempDir()
	_, targetPath := writeFixtures(t, templateFixture, targetFixture)

	_, err := orchestrator.New().Run(context.Background(), orchestrator.Request{
		TemplatePath:     filepath.Join(dir, "absent.json"),
		TranslationsPath: targetPath,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist for template, got %v", err)
	}

	if _, err := orchestrator.New().Run(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for empty request")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	templatePath, targetPath := writeFixtures(t, templateFixture, targetFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.New().Run(ctx, orchestrator.Request{
		TemplatePath:     templatePath,
		TranslationsPath: targetPath,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
