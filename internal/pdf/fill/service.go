package fill

import (
	"fmt"
	"log/slog"
)

// maxKnownFieldSample bounds the number of field names attached to
// unmatched-field diagnostics.
const maxKnownFieldSample = 25

// Service orchestrates one fill request: decode, index, match/inject,
// capture, then flatten or overlay-render. It holds no per-request
// state, so a single Service is safe for any number of concurrent
// requests; each request operates on its own document handle and index.
type Service struct {
	engine Engine
	log    *slog.Logger
}

// NewService creates a fill service backed by the given document
// engine.
func NewService(engine Engine, log *slog.Logger) *Service {
	return &Service{
		engine: engine,
		log:    log,
	}
}

// Fill processes a single request and returns the output document.
// Structural problems (no form root, XFA form, empty form) surface as
// the package sentinel errors before any mutation happens. Names that
// match no field are reported in Result.Skipped and never abort the
// batch; any other failure aborts the request with no partial output.
func (s *Service) Fill(req Request) (*Result, error) {
	doc, err := s.engine.Open(req.Document)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	idx := BuildIndex(doc.TopLevelFields())
	if len(idx) == 0 {
		return nil, ErrNoFormFields
	}

	result := &Result{}
	var entries []OverlayEntry

	for _, fv := range req.Fields {
		entry, ok := idx.Resolve(fv.Name)
		if !ok {
			result.Skipped = append(result.Skipped, fv.Name)
			s.log.Warn("field not found in document",
				"field", fv.Name,
				"known_fields", idx.Sample(maxKnownFieldSample),
			)
			continue
		}

		if err := Inject(entry.Field, fv.Value); err != nil {
			return nil, fmt.Errorf("fill field %q: %w", entry.Name, err)
		}
		entries = append(entries, CaptureOverlay(entry.Field, fv.Value)...)
		result.Filled = append(result.Filled, entry.Name)

		s.log.Debug("field filled", "field", entry.Name, "widgets", len(entry.Field.Widgets()))
	}

	if len(result.Skipped) > 0 {
		result.KnownFields = idx.Sample(maxKnownFieldSample)
	}

	// Page geometry is read after injection so the output mirrors the
	// document in its filled state.
	sizes := doc.PageSizes()

	var canvas Canvas
	if req.RenderTextOverlay {
		canvas = s.engine.NewBlankCanvas()
	} else {
		src, err := doc.Bytes()
		if err != nil {
			return nil, fmt.Errorf("serialize filled document: %w", err)
		}
		canvas, err = s.engine.NewPageCanvas(src)
		if err != nil {
			return nil, fmt.Errorf("prepare page canvas: %w", err)
		}
	}

	out, err := Render(canvas, sizes, entries)
	if err != nil {
		return nil, err
	}
	result.Document = out

	s.log.Info("fill complete",
		"pages", len(sizes),
		"filled", len(result.Filled),
		"skipped", len(result.Skipped),
		"overlay", req.RenderTextOverlay,
	)
	return result, nil
}
