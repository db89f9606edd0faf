package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fillkit/fillkit/internal/pdf/fill"
)

// FillRequest is the wire form of a fill request.
type FillRequest struct {
	DocumentBase64    string             `json:"documentBase64"`
	Fields            []FillRequestField `json:"fields"`
	RenderTextOverlay bool               `json:"renderTextOverlay"`
}

// FillRequestField is one field name/value pair. Value is optional and
// defaults to the empty string.
type FillRequestField struct {
	FieldName string `json:"fieldName"`
	Value     string `json:"value"`
}

// FillResponse is the wire form of a successful fill.
type FillResponse struct {
	DocumentBase64  string   `json:"documentBase64"`
	FilledFields    []string `json:"filledFields,omitempty"`
	SkippedFields   []string `json:"skippedFields,omitempty"`
	KnownFieldNames []string `json:"knownFieldNames,omitempty"`
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestSize)

	var req FillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := decodeFillRequest(&req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fields := make([]fill.FieldValue, len(req.Fields))
	for i, f := range req.Fields {
		fields[i] = fill.FieldValue{Name: f.FieldName, Value: f.Value}
	}

	result, err := s.filler.Fill(fill.Request{
		Document:          doc,
		Fields:            fields,
		RenderTextOverlay: req.RenderTextOverlay,
	})
	if err != nil {
		s.writeFillError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FillResponse{
		DocumentBase64:  base64.StdEncoding.EncodeToString(result.Document),
		FilledFields:    result.Filled,
		SkippedFields:   result.Skipped,
		KnownFieldNames: result.KnownFields,
	})
}

// decodeFillRequest validates the wire request and decodes the document
// bytes. All failures here are client errors.
func decodeFillRequest(req *FillRequest) ([]byte, error) {
	if req.DocumentBase64 == "" {
		return nil, errors.New("documentBase64 is required")
	}
	doc, err := base64.StdEncoding.DecodeString(req.DocumentBase64)
	if err != nil {
		return nil, fmt.Errorf("documentBase64 is not valid base64: %w", err)
	}
	if len(req.Fields) == 0 {
		return nil, errors.New("fields must not be empty")
	}
	for i, f := range req.Fields {
		if f.FieldName == "" {
			return nil, fmt.Errorf("fields[%d].fieldName is required", i)
		}
	}
	return doc, nil
}

// writeFillError maps fill errors onto status codes: structural
// rejections are the client's problem, everything else is ours.
func (s *Server) writeFillError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fill.ErrNoFormRoot),
		errors.Is(err, fill.ErrXFAForm),
		errors.Is(err, fill.ErrNoFormFields):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Error("fill failed", "error", err)
		jsonError(w, "document processing failed", http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
