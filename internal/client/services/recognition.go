package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"

	"github.com/dmitrijs2005/natman/internal/client/api"
	"github.com/dmitrijs2005/natman/internal/client/catalog"
	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/common"
	"github.com/dmitrijs2005/natman/internal/logging"
)

const (
	recognizePath = "/statues/recognize"
	healthPath    = "/statues/health"
)

// FallbackPolicy decides what Recognize does when the server cannot be
// reached at all.
type FallbackPolicy string

const (
	// FallbackDemo answers with a statue from the built-in catalog.
	FallbackDemo FallbackPolicy = "demo"
	// FallbackReport returns the network error.
	FallbackReport FallbackPolicy = "report"
)

// ParseFallback accepts "demo" and "report".
func ParseFallback(s string) (FallbackPolicy, error) {
	switch p := FallbackPolicy(s); p {
	case FallbackDemo, FallbackReport:
		return p, nil
	default:
		return "", fmt.Errorf("unknown recognition fallback %q", s)
	}
}

// Recognition is the outcome of one upload. Demo is set when the result
// was made up locally because the server was unreachable.
type Recognition struct {
	models.RecognitionResult
	Demo bool
}

// Top returns the best candidate, if any.
func (r *Recognition) Top() (models.RecognizedObject, bool) {
	if r == nil || !r.Success || len(r.Objects) == 0 {
		return models.RecognizedObject{}, false
	}
	return r.Objects[0], true
}

type RecognitionService interface {
	Recognize(ctx context.Context, image []byte) (*Recognition, error)
	Health(ctx context.Context) (*models.ModelHealth, error)
}

type recognitionService struct {
	transport api.Transport
	policy    FallbackPolicy
	pick      func(n int) int
	log       logging.Logger
}

type RecognitionOption func(*recognitionService)

// WithDemoPicker replaces the random choice of the demo statue.
func WithDemoPicker(pick func(n int) int) RecognitionOption {
	return func(s *recognitionService) { s.pick = pick }
}

func NewRecognitionService(transport api.Transport, policy FallbackPolicy, log logging.Logger, opts ...RecognitionOption) RecognitionService {
	if log == nil {
		log = logging.Nop()
	}
	s := &recognitionService{transport: transport, policy: policy, pick: rand.Intn, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recognize uploads the image as base64. The call has no timeout. A
// result with Success=false is the server's answer, not an error.
func (s *recognitionService) Recognize(ctx context.Context, image []byte) (*Recognition, error) {
	if len(image) == 0 {
		return nil, &common.ValidationError{Field: "image", Reason: "is empty"}
	}

	req := models.RecognitionRequest{Image: base64.StdEncoding.EncodeToString(image)}
	var res models.RecognitionResult
	err := s.transport.PostJSON(ctx, recognizePath, req, &res)
	if err == nil {
		s.log.Info(ctx, "recognition finished", "success", res.Success, "objects", len(res.Objects))
		return &Recognition{RecognitionResult: res}, nil
	}

	var netErr *common.NetworkError
	if s.policy != FallbackDemo || !errors.As(err, &netErr) || ctx.Err() != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	statues := catalog.DemoStatues()
	chosen := statues[s.pick(len(statues))]
	s.log.Warn(ctx, "recognition server unreachable, using demo result", "statue", chosen.Name, "error", err)
	return &Recognition{
		RecognitionResult: models.RecognitionResult{Success: true, Objects: []models.RecognizedObject{chosen}},
		Demo:              true,
	}, nil
}

// Health reports whether the recognition model is loaded.
func (s *recognitionService) Health(ctx context.Context) (*models.ModelHealth, error) {
	var h models.ModelHealth
	if err := s.transport.GetJSON(ctx, healthPath, &h); err != nil {
		return nil, fmt.Errorf("model health: %w", err)
	}
	return &h, nil
}
