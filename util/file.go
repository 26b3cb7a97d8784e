package util

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// EnsureDir 创建目录（已存在时不报错）
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// Trace 记录耗时，用法：defer util.Trace("remove background")()
func Trace(msg string) func() {
	start := time.Now()
	return func() {
		log.Debug().Dur("elapsed", time.Since(start)).Msg(msg)
	}
}
