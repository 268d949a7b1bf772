// internal/models/request.go
package models

import "strings"

// AnalysisRequest is the caller-supplied input for one pipeline run.
type AnalysisRequest struct {
	Documents   []Document `json:"documents"`
	VoiceData   *VoiceData `json:"voiceData,omitempty"`
	CompanyName string     `json:"companyName,omitempty"`
}

// Document is a handle to one pitch document. Content is used when present,
// otherwise StorageKey is fetched from object storage.
type Document struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	StorageKey  string `json:"storageKey,omitempty"`
	Content     []byte `json:"content,omitempty"`
}

type VoiceData struct {
	Duration   float64 `json:"duration"`
	Transcript string  `json:"transcript,omitempty"`
}

// DocumentNames lists the names of the request's documents in order.
func (r *AnalysisRequest) DocumentNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		names = append(names, d.Name)
	}
	return names
}

// Company returns the trimmed company name, or "" for a nil request.
func (r *AnalysisRequest) Company() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.CompanyName)
}
