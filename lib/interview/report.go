package interview

import (
	"bytes"
	"context"
	"fmt"

	pdfexport "mock-interview-backend/lib/export/pdf"
	"mock-interview-backend/lib/smtp"
	"mock-interview-backend/lib/utils/lock"
	interviewapimodels "mock-interview-backend/models/api/interview"
	wsmodels "mock-interview-backend/models/ws"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (i *impl) FinalTranscript(ctx context.Context, userID, sessionID string) ([]interviewapimodels.TurnView, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return finalTranscript(e)
}

func finalTranscript(e *entry) ([]interviewapimodels.TurnView, error) {
	turns, err := e.session.FinalTranscript()
	if err != nil {
		return nil, err
	}
	return toTurnViews(turns), nil
}

// Report итоговый анализ завершенного интервью, генерируется один раз
func (i *impl) Report(ctx context.Context, userID, sessionID string) (interviewapimodels.ReportView, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return interviewapimodels.ReportView{}, err
	}
	turns, err := finalTranscript(e)
	if err != nil {
		return interviewapimodels.ReportView{}, err
	}
	if report := e.getReport(); report != "" {
		return interviewapimodels.ReportView{SessionID: e.id, Report: report, Turns: turns}, nil
	}

	_, err = lock.WithDelay(ctx, lockKey(sessionID), i.settings.AnswerLockWait, func() error {
		if e.isAbandoned() {
			return ErrSessionNotFound
		}
		if e.getReport() != "" {
			return nil
		}
		report, err := i.Ai.AnalyzeInterview(ctx, e.userID, e.id, e.jobDescription, turns)
		if err != nil {
			return errors.Wrap(err, "ошибка анализа интервью")
		}
		e.setReport(report)
		if i.Store != nil {
			if err = i.Store.Update(e.id, map[string]interface{}{"report": report}); err != nil {
				log.
					WithField("session_id", e.id).
					WithError(err).
					Error("ошибка сохранения анализа интервью в БД")
			}
		}
		i.notify(e, wsmodels.ReportReadyCode, e.title)
		return nil
	})
	if err != nil {
		return interviewapimodels.ReportView{}, err
	}
	return interviewapimodels.ReportView{SessionID: e.id, Report: e.getReport(), Turns: turns}, nil
}

func (i *impl) exportData(ctx context.Context, userID, sessionID string) (interviewapimodels.ExportData, error) {
	e, err := i.lookup(userID, sessionID)
	if err != nil {
		return interviewapimodels.ExportData{}, err
	}
	turns, err := finalTranscript(e)
	if err != nil {
		return interviewapimodels.ExportData{}, err
	}
	return interviewapimodels.ExportData{
		Title:       e.title,
		CreatedAt:   e.createdAt,
		CompletedAt: e.getCompletedAt(),
		Turns:       turns,
		Report:      e.getReport(),
	}, nil
}

func (i *impl) ExportPDF(ctx context.Context, userID, sessionID string) ([]byte, error) {
	data, err := i.exportData(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	body, err := pdfexport.GenerateTranscript(i.settings.FontDir, data)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return body, nil
}

func (i *impl) ExportXLSX(ctx context.Context, userID, sessionID string) (*bytes.Buffer, error) {
	data, err := i.exportData(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return i.Xls.ExportTranscript(data)
}

// EmailReport отправляет pdf с анализом интервью, анализ генерируется при необходимости
func (i *impl) EmailReport(ctx context.Context, userID, sessionID, email string) error {
	if i.Mailer == nil || !i.Mailer.IsConfigured() {
		return ErrEmailNotConfigured
	}
	if _, err := i.Report(ctx, userID, sessionID); err != nil {
		return err
	}
	data, err := i.exportData(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	body, err := pdfexport.GenerateTranscript(i.settings.FontDir, data)
	if err != nil {
		return errors.Wrap(err, "ошибка формирования pdf")
	}
	message := fmt.Sprintf("Результаты тренировочного интервью \"%v\".\n\n%v", data.Title, data.Report)
	err = i.Mailer.SendEMail(email, "результаты интервью", message, smtp.Attachment{
		FileName:    "interview-" + sessionID + ".pdf",
		ContentType: "application/pdf",
		Body:        body,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка отправки отчета на почту")
	}
	return nil
}
