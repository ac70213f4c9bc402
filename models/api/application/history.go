package applicationapimodels

import (
	"time"

	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"
)

type HistoryEntryView struct {
	ID          string          `json:"id"`
	StatusID    string          `json:"status_id"`
	StatusName  string          `json:"status_name"`  // Название статуса
	StatusColor string          `json:"status_color"` // hex-цвет статуса
	Stage       models.StageTag `json:"stage"`        // Тег этапа, единственный источник классификации

	Score       *float64   `json:"score"`
	Notes       *string    `json:"notes"`
	ResourceURL *string    `json:"resource_url"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	ProcessedAt time.Time  `json:"processed_at"`
	ReviewedBy  *string    `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	IsActive    bool       `json:"is_active"`
	IsQualified bool       `json:"is_qualified"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ConvertHistory(rec dbmodels.HistoryEntry) HistoryEntryView {
	result := HistoryEntryView{
		ID:          rec.ID,
		StatusID:    rec.StatusID,
		Score:       rec.Score,
		Notes:       rec.Notes,
		ResourceURL: rec.ResourceURL,
		ScheduledAt: rec.ScheduledAt,
		CompletedAt: rec.CompletedAt,
		ProcessedAt: rec.ProcessedAt,
		ReviewedBy:  rec.ReviewedBy,
		ReviewedAt:  rec.ReviewedAt,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.IsQualified != nil {
		result.IsQualified = *rec.IsQualified
	}
	if rec.Status != nil {
		result.StatusName = rec.Status.Name
		result.StatusColor = rec.Status.Color
		result.Stage = rec.Status.StageTag
	}
	return result
}
