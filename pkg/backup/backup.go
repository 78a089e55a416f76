// Package backup keeps timestamped copies of the destination page. The
// copies are the only recovery path after a bad run, so a snapshot is taken
// before every write and old ones are pruned by count.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const stampLayout = "20060102-150405"

// Snapshot copies the file at path into dir under a timestamped name and
// prunes the oldest snapshots beyond keep. A missing source file is not an
// error; there is simply nothing to back up yet. Returns the snapshot path,
// or "" when nothing was copied.
func Snapshot(path, dir string, keep int, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s for backup: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s-%s%s", stem, now.Format(stampLayout), ext)
	dst := filepath.Join(dir, name)

	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", dst, err)
	}

	if err := prune(dir, stem, ext, keep); err != nil {
		return dst, err
	}
	return dst, nil
}

// prune deletes the oldest snapshots of this file once more than keep exist.
// The timestamp in the name sorts lexicographically, so name order is age
// order.
func prune(dir, stem, ext string, keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing backup dir: %w", err)
	}

	prefix := stem + "-"
	var snapshots []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ext) {
			snapshots = append(snapshots, name)
		}
	}

	if len(snapshots) <= keep {
		return nil
	}

	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("pruning backup %s: %w", name, err)
		}
	}
	return nil
}
