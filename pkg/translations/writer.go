package translations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BackupPath derives the backup location for a target file: same directory,
// ".backup" inserted before the final extension. "translations.json" becomes
// "translations.backup.json".
func BackupPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+".backup"+ext)
}

// WriteBackup re-reads the target file fresh from disk and writes its
// re-serialization to the backup path, overwriting any previous backup. It
// deliberately does not reuse an in-memory copy: the backup must reflect
// whatever is on disk immediately before the target is replaced.
func WriteBackup(targetPath string) (string, error) {
	doc, err := Load(targetPath)
	if err != nil {
		return "", err
	}

	backupPath := BackupPath(targetPath)
	if err := doc.WriteFile(backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// WriteFile serializes the document and replaces the contents of path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("translations: write %s: %w", path, err)
	}
	return nil
}
