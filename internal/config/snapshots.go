package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"finplan/internal/model"
)

const (
	snapshotPrefix = "finplan_"
	snapshotSuffix = ".toml"
)

// Snapshot is one entry in the snapshot directory index.
type Snapshot struct {
	Path        string
	DisplayName string
	Date        model.Date // zero for the undated current snapshot
}

// DatedName returns the snapshot filename carrying the given date,
// e.g. "finplan_2026-08-30.toml".
func DatedName(d model.Date) string {
	return snapshotPrefix + d.String() + snapshotSuffix
}

// ListSnapshots indexes the snapshot files in a directory, newest dated
// snapshot first, with the undated current snapshot leading when
// present. The index is read-only; it never touches file contents.
func ListSnapshots(dir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot dir: %w", err)
	}

	var dated []Snapshot
	var current *Snapshot

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if name == DefaultFile {
			current = &Snapshot{
				Path:        filepath.Join(dir, name),
				DisplayName: fmt.Sprintf("Current snapshot (%s)", name),
			}
			continue
		}
		if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}

		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix)
		snap := Snapshot{Path: filepath.Join(dir, name), DisplayName: name}
		if d, err := model.ParseDate(dateStr); err == nil {
			snap.Date = d
			snap.DisplayName = "Snapshot from " + dateStr
		}
		dated = append(dated, snap)
	}

	sort.Slice(dated, func(i, j int) bool {
		return filepath.Base(dated[i].Path) > filepath.Base(dated[j].Path)
	})

	if current != nil {
		return append([]Snapshot{*current}, dated...), nil
	}
	return dated, nil
}

// MostRecent returns the path of the newest dated snapshot in dir,
// falling back to the default snapshot path when none exist.
func MostRecent(dir string) string {
	snaps, err := ListSnapshots(dir)
	if err != nil {
		return filepath.Join(dir, DefaultFile)
	}
	for _, s := range snaps {
		if !s.Date.IsZero() {
			return s.Path
		}
	}
	return filepath.Join(dir, DefaultFile)
}

// Backup copies a snapshot to a dated sibling file. An existing backup
// for the same date is overwritten.
func Backup(path string, asOf model.Date) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening snapshot for backup: %w", err)
	}
	defer src.Close()

	backupPath := filepath.Join(filepath.Dir(path), DatedName(asOf))
	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return backupPath, nil
}
