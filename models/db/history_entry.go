package dbmodels

import "time"

// HistoryEntry - строка журнала прохождения этапа.
// Журнал append-only: записи не удаляются, при переходе предыдущая запись деактивируется.
// Поля кандидата (completed_at) и поля проверяющего (score, reviewed_*) пишутся
// разными операциями и не перезаписывают друг друга.
type HistoryEntry struct {
	BaseModel
	ApplicationID string  `gorm:"type:varchar(36);index"`
	StatusID      string  `gorm:"type:varchar(36)"`
	Status        *Status `gorm:"foreignKey:StatusID"`
	IsActive      bool    `gorm:"index"`
	ProcessedAt   time.Time

	// заполняется администратором при назначении встречи/теста
	ScheduledAt *time.Time
	ResourceURL *string `gorm:"type:varchar(512)"`

	// заполняется действием кандидата, после установки не очищается
	CompletedAt *time.Time

	// заполняется проверяющим, для этапа test только после completed_at
	Score       *float64
	IsQualified *bool
	ReviewedBy  *string `gorm:"type:varchar(36)"`
	ReviewedAt  *time.Time

	Notes *string

	// итоговое решение по заявке
	DecisionMadeAt  *time.Time
	DecisionMadeBy  *string `gorm:"type:varchar(36)"`
	RejectionReason *string
}
