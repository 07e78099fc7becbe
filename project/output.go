package project

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// OutputExt is the extension of generated Python files.
const OutputExt = ".py"

// OutputPath names the Python file for src. The extension of src is
// replaced by .py; when that would name src itself, .py is appended
// instead. With an empty outDir the file sits next to src, otherwise it
// goes to outDir/sub.
func OutputPath(src, outDir, sub string) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + OutputExt
	if name == base {
		name = base + OutputExt
	}
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outDir, sub, name)
}

// DetectNewline returns the line terminator used by the first line of src,
// "\n" when there is none.
func DetectNewline(src []byte) string {
	i := bytes.IndexByte(src, '\n')
	if i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// SourceMode returns the permission bits of path, or 0644 when it cannot
// be read.
func SourceMode(path string) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}

// RenderOutput converts generated text to the given line terminator.
func RenderOutput(text, newline string) []byte {
	if newline != "\n" {
		text = strings.ReplaceAll(text, "\n", newline)
	}
	return []byte(text)
}

// WriteOutput writes content to dst with mode, creating parent
// directories as needed. The mode is applied even when dst exists.
func WriteOutput(dst string, content []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := os.Chmod(dst, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", dst, err)
	}
	return nil
}
