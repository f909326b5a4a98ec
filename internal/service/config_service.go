package service

import (
	"Postdeck/internal/api/config"
	"Postdeck/internal/api/dto"
	"context"
)

type ConfigService interface {
	GetConfig(ctx context.Context) (*dto.SystemConfigDTO, error)
}

type configServiceImpl struct {
	cfg      *config.Config
	draftSvc DraftService
}

func NewConfigService(cfg *config.Config, draftSvc DraftService) ConfigService {
	return &configServiceImpl{
		cfg:      cfg,
		draftSvc: draftSvc,
	}
}

func (s *configServiceImpl) GetConfig(ctx context.Context) (*dto.SystemConfigDTO, error) {
	last, err := s.draftSvc.LastGeneration(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SystemConfigDTO{
		Environment:    s.cfg.Environment,
		GenerationTime: s.cfg.Drafts.GenerationTime,
		TweetsPerDay:   s.cfg.Drafts.TweetsPerDay,
		Sources:        s.draftSvc.Sources(),
		LastGeneration: last,
	}, nil
}
