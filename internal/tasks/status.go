package tasks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"modgrip/internal/format"
)

// Percent returns how much of p is done, or 0 when the total is unknown
func Percent(p Progress) float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// StatusLine summarises a task on one line.
// The state word is shown unless the task is running with a known total, in which case
// the percentage takes its place. Byte tasks also show their transferred size.
func StatusLine(t Task, tag language.Tag) string {
	var parts []string

	if t.Status.State != StateRunning || t.Progress.Total == 0 {
		parts = append(parts, string(t.Status.State))
	}
	if !t.IsComplete() && t.Progress.Total != 0 {
		parts = append(parts, format.Compact(tag, Percent(t.Progress))+"%")
	}

	if t.Metadata.ProgressUnit == UnitBytes {
		done := format.HumanizeFileSize(t.Progress.Completed, false)
		if t.IsComplete() && t.Progress.Completed == t.Progress.Total {
			parts = append(parts, done)
		} else {
			parts = append(parts, done+" / "+format.HumanizeFileSize(t.Progress.Total, false))
		}
	}

	if t.Status.State == StateSuccess && t.Status.Success != "" {
		parts = append(parts, t.Status.Success)
	}

	return strings.Join(parts, "  ")
}

// ClearCache starts a task that empties dir, reporting freed bytes as progress
func (m *Manager) ClearCache(ctx context.Context, dir string) string {
	meta := Metadata{
		Title:        "Clear cache",
		Kind:         KindOther,
		ProgressUnit: UnitBytes,
	}
	return m.Start(ctx, meta, func(ctx context.Context, r *Reporter) error {
		return clearDir(ctx, dir, r)
	})
}

func clearDir(ctx context.Context, dir string, r *Reporter) error {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			r.Succeed("nothing to clear")
			return nil
		}
		return fmt.Errorf("scan cache: %w", err)
	}
	r.SetTotal(total)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, e.Name())
		size := dirSize(path)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		r.Add(size)
	}

	r.Succeed(fmt.Sprintf("freed %s", format.HumanizeFileSize(total, true)))
	return nil
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				size += info.Size()
			}
		}
		return nil
	})
	return size
}
