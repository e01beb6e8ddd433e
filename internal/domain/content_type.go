package domain

import (
	"path/filepath"
	"strings"
)

// csvMimeTypes are the declared types Drive uses for comma separated files
var csvMimeTypes = map[string]struct{}{
	"text/csv":                      {},
	"application/csv":               {},
	"text/comma-separated-values":   {},
	"text/x-csv":                    {},
	"text/x-comma-separated-values": {},
}

// plainTextExtensions are uploaded as text/plain whatever Drive declares,
// because the index backend rejects them when they arrive classified as
// binary or as a language-specific type.
var plainTextExtensions = map[string]struct{}{
	".csv": {}, ".tsv": {}, ".txt": {}, ".md": {}, ".markdown": {}, ".rst": {},
	".log": {}, ".ini": {}, ".cfg": {}, ".conf": {}, ".toml": {}, ".yaml": {}, ".yml": {},
	".json": {}, ".xml": {}, ".html": {}, ".htm": {}, ".css": {}, ".scss": {},
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".mjs": {}, ".vue": {},
	".py": {}, ".ipynb": {}, ".go": {}, ".java": {}, ".kt": {}, ".scala": {},
	".c": {}, ".h": {}, ".cpp": {}, ".hpp": {}, ".cc": {}, ".cs": {}, ".rs": {},
	".rb": {}, ".php": {}, ".swift": {}, ".m": {}, ".r": {}, ".sql": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".ps1": {}, ".bat": {},
	".dart": {}, ".lua": {}, ".pl": {}, ".tex": {}, ".proto": {}, ".graphql": {},
}

// ResolveDownloadExport decides how the materializer fetches a file.
// Editor-native formats have no raw bytes and are exported to ExportMimeType;
// the boolean is false when the raw content should be fetched instead.
func ResolveDownloadExport(mimeType string) (string, bool) {
	if IsGoogleAppsType(mimeType) {
		return ExportMimeType, true
	}
	return "", false
}

// ResolveUploadContentType picks the content type handed to the index
// backend for a file. Rules, first match wins:
//   - editor-native formats become ExportMimeType (what the download produced)
//   - CSV variants and, PDFs aside, allow-listed code/markup/text extensions become text/plain
//   - anything else passes through unchanged
//
// The result is a fixed point: resolving it again returns it unchanged.
func ResolveUploadContentType(declared, displayName string) string {
	if IsGoogleAppsType(declared) {
		return ExportMimeType
	}

	if isCSVType(declared) {
		return PlainTextMimeType
	}

	// Exported documents keep their type even when the title looks like a
	// source file ("notes.md" as a Google Doc).
	if declared == ExportMimeType {
		return declared
	}

	ext := strings.ToLower(filepath.Ext(displayName))
	if _, ok := plainTextExtensions[ext]; ok {
		return PlainTextMimeType
	}

	return declared
}

func isCSVType(mimeType string) bool {
	base := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(base, ";"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	_, ok := csvMimeTypes[base]
	return ok
}
