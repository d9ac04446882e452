// Package ffmpegsource decodes video files into frames by running ffmpeg as
// an external process and reading PNG images from its stdout.
package ffmpegsource

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrFFmpegNotFound is returned when ffmpeg is not found.
var ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found in PATH")

// FindFFmpeg searches for ffmpeg. A non-empty custom path is used as-is
// if it exists; otherwise PATH and common install locations are searched.
func FindFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// IsAvailable reports whether ffmpeg can be found.
func IsAvailable() bool {
	_, err := FindFFmpeg("")
	return err == nil
}
