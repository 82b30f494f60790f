// Package filex turns local paths into upload descriptors.
package filex

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/common"
)

// Describe stats path and returns its descriptor, named by the base name.
func Describe(path string) (models.FileDescriptor, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.FileDescriptor{}, fmt.Errorf("%w: stat %s: %w", common.ErrLocalIO, path, err)
	}
	if fi.IsDir() {
		return models.FileDescriptor{}, fmt.Errorf("%w: %s is a directory", common.ErrLocalIO, path)
	}

	mt, err := DetectMimeType(path)
	if err != nil {
		return models.FileDescriptor{}, err
	}

	return models.FileDescriptor{
		FileName: filepath.Base(path),
		FileSize: fi.Size(),
		MimeType: mt,
	}, nil
}

// DescribeAll describes every path and returns the descriptors together
// with the fileName → path mapping the upload phase needs. Two paths with
// the same base name are rejected.
func DescribeAll(paths []string) ([]models.FileDescriptor, map[string]string, error) {
	descriptors := make([]models.FileDescriptor, 0, len(paths))
	byName := make(map[string]string, len(paths))

	for _, p := range paths {
		d, err := Describe(p)
		if err != nil {
			return nil, nil, err
		}
		if prev, ok := byName[d.FileName]; ok {
			return nil, nil, fmt.Errorf("%w: %q (%s and %s)", common.ErrDuplicateFileName, d.FileName, prev, p)
		}
		byName[d.FileName] = p
		descriptors = append(descriptors, d)
	}

	return descriptors, byName, nil
}

// DetectMimeType uses the extension table first and falls back to content
// sniffing. Parameters such as charset are dropped.
func DetectMimeType(path string) (string, error) {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return stripParams(t), nil
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: sniff %s: %w", common.ErrLocalIO, path, err)
	}
	return stripParams(m.String()), nil
}

func stripParams(t string) string {
	base, _, _ := strings.Cut(t, ";")
	return strings.TrimSpace(base)
}
