package domain

import "strings"

const (
	// FolderMimeType marks a Drive entry as a folder
	FolderMimeType = "application/vnd.google-apps.folder"
	// GoogleAppsMimePrefix is shared by every editor-native Drive format
	GoogleAppsMimePrefix = "application/vnd.google-apps."
	// ExportMimeType is the portable format editor-native documents are exported to
	ExportMimeType = "application/pdf"
	// PlainTextMimeType is the content type the index backend always accepts
	PlainTextMimeType = "text/plain"
	// RootFolderID addresses the top of the user's Drive
	RootFolderID = "root"
)

// FileDescriptor describes one Drive entry. It only lives for the duration of
// a listing or a sync operation and is never persisted.
type FileDescriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	IconLink string `json:"iconLink,omitempty"`
}

// IsFolder reports whether the entry is a folder
func (f FileDescriptor) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// IsGoogleAppsType reports whether mimeType is an editor-native Drive format
// (Docs, Sheets, Slides, ...) that has no raw bytes and must be exported.
func IsGoogleAppsType(mimeType string) bool {
	return strings.HasPrefix(mimeType, GoogleAppsMimePrefix)
}
