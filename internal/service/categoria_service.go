package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"farmastock/internal/apierror"
	"farmastock/internal/dto"
	"farmastock/internal/model"
	"farmastock/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CategoriaService exposes the fixed, read-only category catalog.
type CategoriaService interface {
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
}

const (
	categoriasCacheKey = "categorias:list"
	categoriasCacheTTL = 5 * time.Minute
)

type categoriaService struct {
	repo repository.CategoriaRepository
	rdb  *redis.Client
}

func NewCategoriaService(repo repository.CategoriaRepository, rdb *redis.Client) CategoriaService {
	return &categoriaService{repo: repo, rdb: rdb}
}

func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:            c.ID.String(),
		Nombre:        c.Nombre,
		NombreDisplay: c.NombreDisplay(),
	}
}

// Listar serves the catalog from Redis when possible; the set is seeded once
// and never mutated through the API, so a short TTL is safe.
func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, categoriasCacheKey).Bytes(); err == nil {
			var result []dto.CategoriaResponse
			if json.Unmarshal(cached, &result) == nil {
				return result, nil
			}
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.rdb.Set(ctx, categoriasCacheKey, payload, categoriasCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("categorias cache set failed")
			}
		}
	}
	return result, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Categoría no encontrada")
		}
		return nil, err
	}
	resp := mapCategoria(*c)
	return &resp, nil
}
