package invite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/backend"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/projecttype"
)

const (
	errProjectNotFound = "Project not found"
	errAuthRequired    = "Authentication required"
)

// RecordReader reads project records from the backend API.
type RecordReader interface {
	Fetch(ctx context.Context, variant projecttype.Variant, id string) (map[string]any, error)
	Exists(ctx context.Context, variant projecttype.Variant, id string) backend.Existence
}

// MetadataResponse is the JSON body returned by the metadata endpoint.
type MetadataResponse struct {
	projecttype.Metadata
	Error string `json:"error,omitempty"`
}

// MetadataResult tells the handler how to answer a metadata request.
type MetadataResult struct {
	// Redirect asks the handler to send the client to the fallback URL.
	Redirect   bool
	StatusCode int
	Body       MetadataResponse
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Records  RecordReader
	Registry projecttype.Registry
	// FallbackURL enables redirects for unknown projects when non-empty.
	FallbackURL string
	Logger      *log.Logger
}

// Service answers project lookups for the invitation routes.
type Service struct {
	records     RecordReader
	registry    projecttype.Registry
	fallbackURL string
	logger      *log.Logger
}

// NewService validates options and builds a Service.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Records == nil {
		return nil, errors.New("record reader is required")
	}
	if len(opts.Registry) == 0 {
		return nil, errors.New("project type registry is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		records:     opts.Records,
		registry:    opts.Registry,
		fallbackURL: opts.FallbackURL,
		logger:      logger,
	}, nil
}

// Supports reports whether a public project type is served.
func (s *Service) Supports(publicType string) bool {
	_, ok := s.registry.Lookup(projecttype.ToInternal(publicType))
	return ok
}

// CheckExistence reports whether the backend knows the project. Unsupported
// types and inconclusive checks yield backend.Unknown.
func (s *Service) CheckExistence(ctx context.Context, publicType, id string) backend.Existence {
	apiCfg, ok := s.registry.Lookup(projecttype.ToInternal(publicType))
	if !ok || id == "" {
		return backend.Unknown
	}
	existence := s.records.Exists(ctx, apiCfg.Selected(), id)
	s.logger.Printf("existence check project_type=%s id=%s result=%s", publicType, id, existence)
	return existence
}

// FetchMetadata reads a project and shapes it for the invitation page.
func (s *Service) FetchMetadata(ctx context.Context, publicType, id string) MetadataResult {
	apiCfg, ok := s.registry.Lookup(projecttype.ToInternal(publicType))
	if !ok {
		s.logger.Printf("metadata unsupported project_type=%s id=%s", publicType, id)
		return s.notFound(fmt.Sprintf("Project type %q is not supported", publicType))
	}
	if id == "" {
		s.logger.Printf("metadata empty id project_type=%s", publicType)
		return s.notFound(errProjectNotFound)
	}

	variant := apiCfg.Selected()
	raw, err := s.records.Fetch(ctx, variant, id)
	switch {
	case err == nil:
		return MetadataResult{
			StatusCode: http.StatusOK,
			Body:       MetadataResponse{Metadata: variant.Map(raw)},
		}
	case errors.Is(err, backend.ErrNotFound):
		s.logger.Printf("metadata not found project_type=%s id=%s", publicType, id)
		return s.notFound(errProjectNotFound)
	default:
		s.logger.Printf("metadata fetch failed project_type=%s id=%s error=%v", publicType, id, err)
		return MetadataResult{
			StatusCode: http.StatusOK,
			Body:       MetadataResponse{Error: errAuthRequired},
		}
	}
}

func (s *Service) notFound(message string) MetadataResult {
	if s.fallbackURL != "" {
		return MetadataResult{Redirect: true, StatusCode: http.StatusMovedPermanently}
	}
	return MetadataResult{
		StatusCode: http.StatusNotFound,
		Body:       MetadataResponse{Error: message},
	}
}
