package main

import (
	"context"

	"github.com/philipparndt/godim/internal/job"
	"github.com/philipparndt/godim/internal/loader"
	"github.com/philipparndt/godim/pkg/dimension"
	"github.com/philipparndt/godim/pkg/feature"
	"github.com/philipparndt/godim/pkg/mesh"
	"github.com/rs/zerolog/log"
)

// session is a loaded model with its detected features and, when a job
// file was given, the dimensions of the job
type session struct {
	mesh     *mesh.Mesh
	features []*feature.Feature
	detector *feature.Detector
	job      *job.Job
	dims     []*dimension.Dimension
}

func newLoader() *loader.Loader {
	return loader.New(cfg.Mesh.WeldTolerance, log.Logger)
}

// open loads the model and detects its features. jobPath may be empty.
func open(ctx context.Context, modelPath, jobPath string) (*session, error) {
	m, err := newLoader().Load(ctx, modelPath)
	if err != nil {
		return nil, err
	}

	s := &session{
		mesh:     m,
		detector: cfg.NewDetector(log.Logger),
	}
	s.features = s.detector.Detect(m, mesh.NewMarks())
	log.Debug().Int("features", len(s.features)).Msg("features detected")

	if jobPath == "" {
		return s, nil
	}
	if s.job, err = job.Load(jobPath); err != nil {
		return nil, err
	}
	if s.dims, err = s.job.Build(m, s.features); err != nil {
		return nil, err
	}
	return s, nil
}

// name labels the i-th dimension of the job
func (s *session) name(i int) string {
	if n := s.job.Dimensions[i].Name; n != "" {
		return n
	}
	return s.dims[i].String()
}
