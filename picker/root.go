package picker

import (
	"os"
	"path/filepath"
)

// rootDir 当前卷的根目录（Windows 下为盘符根）
func rootDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return string(filepath.Separator)
	}
	return filepath.VolumeName(wd) + string(filepath.Separator)
}
