package storage

import (
	"path"
	"strings"
)

// SanitizeFilename removes path separators so a name can never select a
// sub directory of the upload day.
func SanitizeFilename(fname string) string {
	fname = strings.ReplaceAll(fname, "/", "")
	fname = strings.ReplaceAll(fname, "\\", "")
	switch fname {
	case "", ".", "..":
		fname = "_" + fname
	}
	return fname
}

// MakeBinDataKey is the location of an upload relative to the media root:
// <upload_root>/<year>/<month>/<day>/<sanitized name>.
func MakeBinDataKey(uploadRoot, year, month, day, fname string) string {
	key := path.Join(toSlash(uploadRoot), year, month, day, SanitizeFilename(fname))
	return strings.TrimPrefix(key, "/")
}

// MakeBinDataPath is MakeBinDataKey below the media root, with forward
// slashes only.
func MakeBinDataPath(mediaRoot, uploadRoot, year, month, day, fname string) string {
	return path.Join(toSlash(mediaRoot), MakeBinDataKey(uploadRoot, year, month, day, fname))
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// withSuffix inserts _n before the extension: a.bin -> a_1.bin.
func withSuffix(key string, n int) string {
	ext := path.Ext(key)
	base := strings.TrimSuffix(key, ext)
	return base + "_" + itoa(n) + ext
}
