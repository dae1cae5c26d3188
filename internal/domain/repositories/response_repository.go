package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"gorm.io/gorm"
)

// ResponseRepository implementa ResponseArchive sobre gorm
type ResponseRepository struct {
	db       *gorm.DB
	location *time.Location
}

// NewResponseRepository cria uma nova instância de ResponseRepository
func NewResponseRepository(db *gorm.DB, location *time.Location) *ResponseRepository {
	if location == nil {
		location = time.UTC
	}
	return &ResponseRepository{
		db:       db,
		location: location,
	}
}

// Save insere todas as linhas de uma passada de salvamento numa única transação
func (r *ResponseRepository) Save(ctx context.Context, rows []entities.ResponseRecord) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("erro ao arquivar respostas: %w", err)
	}
	return nil
}

// List retorna as linhas arquivadas, mais recentes primeiro, com filtro opcional por response_id
func (r *ResponseRepository) List(ctx context.Context, responseID string, page, limit int) ([]entities.ResponseRecord, int64, error) {
	var records []entities.ResponseRecord
	var total int64

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Model(&entities.ResponseRecord{})
	if responseID != "" {
		query = query.Where("response_id = ?", responseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar respostas: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.Order("submitted_at desc, id asc").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar respostas: %w", err)
	}

	// Converter timestamps para o fuso configurado
	for i := range records {
		records[i].SubmittedAt = records[i].SubmittedAt.In(r.location)
		records[i].CreatedAt = records[i].CreatedAt.In(r.location)
	}

	return records, total, nil
}
