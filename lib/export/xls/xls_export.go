package xlsexport

import (
	"bytes"

	interviewapimodels "mock-interview-backend/models/api/interview"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportTranscript(data interviewapimodels.ExportData) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	TranscriptSheet = "Интервью"
	ReportSheet     = "Анализ"
)

var (
	transcriptHeaders = []string{"№", "Вопрос", "Ответ", "Обратная связь", "Время ответа"}
	transcriptWidths  = []float64{6, 45, 60, 60, 18}
)

func (i impl) ExportTranscript(data interviewapimodels.ExportData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, transcriptHeaders, transcriptWidths)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(data.Turns) != 0 {
		if err = writeTranscriptData(f, sheet, data.Turns, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, TranscriptSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	if data.Report != "" {
		if err = writeReport(f, data.Report); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования листа анализа в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeTranscriptData(f *excelize.File, sheet string, turns []interviewapimodels.TurnView, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(transcriptHeaders), row+len(turns)); err != nil {
		return err
	}
	for _, turn := range turns {
		row++
		recordedAt := ""
		if !turn.RecordedAt.IsZero() {
			recordedAt = turn.RecordedAt.Format("02.01.2006 15:04:05")
		}
		err := writeRow(f, sheet, row,
			turn.QuestionIndex+1,
			turn.QuestionText,
			turn.TranscriptText,
			turn.FeedbackText,
			recordedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeReport(f *excelize.File, report string) error {
	if _, err := f.NewSheet(ReportSheet); err != nil {
		return err
	}
	if err := f.SetColWidth(ReportSheet, "A", "A", 120); err != nil {
		return err
	}
	if err := applyDataCellStyle(f, ReportSheet, 1, 1, 1, 1); err != nil {
		return err
	}
	return writeColumn(f, ReportSheet, 1, 1, report)
}
