package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SysHealth is a point-in-time snapshot of the process and its data files.
type SysHealth struct {
	AllocMB      uint64
	SysMB        uint64
	NumGC        uint32
	Goroutines   int
	DatabaseSize string
	ExportsSize  string
	ExportFiles  int
}

// GetSysHealth collects runtime stats and the on-disk size of the database
// file and the export directory.
func GetSysHealth(databasePath, exportDir string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var dbSize int64
	if info, err := os.Stat(databasePath); err == nil {
		dbSize = info.Size()
	}
	exportsSize, files := dirSize(exportDir)

	return SysHealth{
		AllocMB:      m.Alloc / 1024 / 1024,
		SysMB:        m.Sys / 1024 / 1024,
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
		DatabaseSize: FormatBytes(dbSize),
		ExportsSize:  FormatBytes(exportsSize),
		ExportFiles:  files,
	}
}

func dirSize(path string) (int64, int) {
	var size int64
	var files int
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
			files++
		}
		return nil
	})
	return size, files
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
