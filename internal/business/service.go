// Package business turns validated client requests into synthesized records.
// It owns the process-wide random source and serializes access to it so that
// the draws of one record are never interleaved with another's.
package business

import (
	"context"
	"errors"
	"fmt"

	"growthpro/internal/models"
	"growthpro/internal/synth"
)

const (
	msgRecordFailed   = "Failed to generate business data. Please try again."
	msgHeadlineFailed = "Failed to regenerate headline. Please try again."
)

// Service handles record creation and headline regeneration
type Service struct {
	synthesizer *synth.DataSynthesizer
	source      *synth.LockedSource
}

// NewService creates a service drawing from src. src is wrapped in a
// LockedSource unless it already is one.
func NewService(synthesizer *synth.DataSynthesizer, src synth.Source) *Service {
	return &Service{
		synthesizer: synthesizer,
		source:      synth.NewLockedSource(src),
	}
}

// CreateRecord normalizes and validates the request, then synthesizes a record
func (s *Service) CreateRecord(ctx context.Context, req *models.BusinessDataRequest) (*models.BusinessRecord, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	var record models.BusinessRecord
	s.source.With(func(src synth.Source) {
		record = s.synthesizer.Generate(req.Name, req.Location, src)
	})

	if err := record.Check(); err != nil {
		return nil, NewGenerationError(msgRecordFailed, fmt.Errorf("record for %q failed range check: %w", req.Name, err))
	}

	return &record, nil
}

// RegenerateHeadline normalizes and validates the request, then picks a headline
func (s *Service) RegenerateHeadline(ctx context.Context, req *models.HeadlineRequest) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", validationError(err)
	}

	var headline string
	s.source.With(func(src synth.Source) {
		headline = s.synthesizer.RegenerateHeadline(req.Name, req.Location, src)
	})

	if headline == "" {
		return "", NewGenerationError(msgHeadlineFailed, errors.New("empty headline"))
	}

	return headline, nil
}

func validationError(err error) *ServiceError {
	var fe *models.FieldError
	if errors.As(err, &fe) {
		return NewValidationError(fe.Field, fe.Message, err)
	}
	return NewValidationError("", "Invalid request", err)
}
