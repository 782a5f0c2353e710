package mcpconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

const backupTimeFormat = "20060102150405"

// BackupPath returns the backup location for a settings file at the given
// instant. Second granularity; repeated runs within one second collide,
// which is acceptable for a manually-invoked tool.
func BackupPath(path string, now time.Time) string {
	return path + ".backup." + now.Format(backupTimeFormat)
}

// Save writes the document back to its path. For an existing file the
// original bytes are first copied to a timestamped backup, then the new
// content is written to a temporary file in the same directory and moved
// over the original in one rename. The original is never truncated in
// place, so any failure leaves it intact.
//
// Returns the backup path, or "" when the document was bootstrapped and
// there was nothing to back up.
func (d *Document) Save(now time.Time) (string, error) {
	data, err := d.MarshalIndent()
	if err != nil {
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot serialize settings document",
			err,
		)
	}

	dir := filepath.Dir(d.path)

	backupPath := ""
	if d.exists {
		backupPath = BackupPath(d.path, now)
		if err := os.WriteFile(backupPath, d.original, d.mode); err != nil {
			return "", errors.PersistenceError(
				"Backing up settings file",
				backupPath,
				"Cannot write backup file",
				err,
			)
		}
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot create settings directory",
			err,
		)
	}

	tmp, err := os.CreateTemp(dir, ".cline_mcp_settings-*.tmp")
	if err != nil {
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot create temporary file",
			err,
		)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot write temporary file",
			err,
		)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot flush temporary file",
			err,
		)
	}

	if err := os.Chmod(tmpPath, d.mode); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot set settings file permissions",
			err,
		)
	}

	if err := os.Rename(tmpPath, d.path); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.PersistenceError(
			"Writing settings file",
			d.path,
			"Cannot replace settings file",
			err,
		)
	}

	d.original = data
	d.exists = true
	return backupPath, nil
}
