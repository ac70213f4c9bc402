package xlsexport

import (
	"bytes"

	dbmodels "candidate-flow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportHistory(list []dbmodels.HistoryEntry) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var historyHeaders = []string{"Статус", "Этап", "Дата перехода", "Назначено", "Завершено", "Оценка", "Решение", "Проверил", "Активная"}

const dateTimeFormat = "02.01.2006 15:04"

func (i impl) ExportHistory(list []dbmodels.HistoryEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, historyHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeHistoryData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "История заявки")
	return f.WriteToBuffer()
}

func writeHistoryData(f *excelize.File, sheet string, list []dbmodels.HistoryEntry, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(historyHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Статус"
		col := 1
		statusName := ""
		stage := ""
		if item.Status != nil {
			statusName = item.Status.Name
			stage = string(item.Status.StageTag)
		}
		if err := writeColumn(f, sheet, col, row, statusName); err != nil {
			return row, err
		}

		// "Этап"
		col++
		if err := writeColumn(f, sheet, col, row, stage); err != nil {
			return row, err
		}

		// "Дата перехода"
		col++
		if err := writeColumn(f, sheet, col, row, item.ProcessedAt.Format(dateTimeFormat)); err != nil {
			return row, err
		}

		// "Назначено"
		col++
		if item.ScheduledAt != nil {
			if err := writeColumn(f, sheet, col, row, item.ScheduledAt.Format(dateTimeFormat)); err != nil {
				return row, err
			}
		}

		// "Завершено"
		col++
		if item.CompletedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.CompletedAt.Format(dateTimeFormat)); err != nil {
				return row, err
			}
		}

		// "Оценка"
		col++
		if item.Score != nil {
			if err := writeColumn(f, sheet, col, row, *item.Score); err != nil {
				return row, err
			}
		}

		// "Решение"
		col++
		decision := ""
		if item.DecisionMadeAt != nil {
			decision = item.DecisionMadeAt.Format(dateTimeFormat)
			if item.RejectionReason != nil {
				decision += ": " + *item.RejectionReason
			}
		}
		if err := writeColumn(f, sheet, col, row, decision); err != nil {
			return row, err
		}

		// "Проверил"
		col++
		if item.ReviewedBy != nil {
			if err := writeColumn(f, sheet, col, row, *item.ReviewedBy); err != nil {
				return row, err
			}
		}

		// "Активная"
		col++
		active := ""
		if item.IsActive {
			active = "да"
		}
		if err := writeColumn(f, sheet, col, row, active); err != nil {
			return row, err
		}
	}
	return row, nil
}
