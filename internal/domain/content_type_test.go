package domain

import "testing"

// TestResolveDownloadExport tests which files are exported instead of fetched raw
func TestResolveDownloadExport(t *testing.T) {
	tests := []struct {
		mimeType   string
		wantExport bool
	}{
		{"application/vnd.google-apps.document", true},
		{"application/vnd.google-apps.spreadsheet", true},
		{"application/vnd.google-apps.presentation", true},
		{"application/pdf", false},
		{"text/csv", false},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			exportType, export := ResolveDownloadExport(tt.mimeType)
			if export != tt.wantExport {
				t.Fatalf("expected export=%v, got %v", tt.wantExport, export)
			}
			if export && exportType != ExportMimeType {
				t.Errorf("expected export type %s, got %s", ExportMimeType, exportType)
			}
		})
	}
}

// TestResolveUploadContentType tests the upload classification rules in order
func TestResolveUploadContentType(t *testing.T) {
	tests := []struct {
		name        string
		declared    string
		displayName string
		want        string
	}{
		{"google doc exported", "application/vnd.google-apps.document", "Roadmap", "application/pdf"},
		{"google doc titled like code", "application/vnd.google-apps.document", "notes.md", "application/pdf"},
		{"csv declared", "text/csv", "sales.csv", "text/plain"},
		{"csv with charset", "text/csv; charset=utf-8", "sales", "text/plain"},
		{"csv alias", "application/csv", "export", "text/plain"},
		{"csv by extension", "application/octet-stream", "data.CSV", "text/plain"},
		{"python source", "text/x-python", "main.py", "text/plain"},
		{"go source", "application/octet-stream", "server.go", "text/plain"},
		{"markdown", "text/markdown", "README.md", "text/plain"},
		{"pdf passes through", "application/pdf", "paper.pdf", "application/pdf"},
		{"docx passes through", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"no extension passes through", "image/png", "diagram", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveUploadContentType(tt.declared, tt.displayName)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestResolveUploadContentTypeIsIdempotent tests that resolving the output again is a no-op
func TestResolveUploadContentTypeIsIdempotent(t *testing.T) {
	inputs := []struct {
		declared    string
		displayName string
	}{
		{"text/csv", "sales.csv"},
		{"application/vnd.google-apps.spreadsheet", "budget.csv"},
		{"application/vnd.google-apps.document", "notes.md"},
		{"application/octet-stream", "script.sh"},
		{"application/pdf", "paper.pdf"},
		{"image/jpeg", "photo.jpg"},
	}

	for _, in := range inputs {
		once := ResolveUploadContentType(in.declared, in.displayName)
		twice := ResolveUploadContentType(once, in.displayName)
		if once != twice {
			t.Errorf("%s/%s: expected fixed point %s, got %s", in.declared, in.displayName, once, twice)
		}
	}
}
