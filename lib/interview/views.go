package interview

import (
	interviewsession "mock-interview-backend/lib/interview-session"
	interviewapimodels "mock-interview-backend/models/api/interview"
)

func toSessionView(e *entry) interviewapimodels.SessionView {
	view := interviewapimodels.SessionView{
		ID:        e.id,
		Title:     e.title,
		Status:    string(e.session.Status()),
		Cursor:    e.session.Cursor(),
		Total:     len(e.session.Questions()),
		CreatedAt: e.createdAt,
	}
	if q, err := e.session.CurrentQuestion(); err == nil {
		view.CurrentQuestion = &interviewapimodels.QuestionView{Index: q.Index, Text: q.Text, Total: view.Total}
	}
	return view
}

func toListItem(e *entry) interviewapimodels.SessionListItem {
	item := interviewapimodels.SessionListItem{
		ID:        e.id,
		Title:     e.title,
		Status:    string(e.session.Status()),
		Total:     len(e.session.Questions()),
		Answered:  e.session.Cursor(),
		CreatedAt: e.createdAt,
	}
	if completedAt := e.getCompletedAt(); !completedAt.IsZero() {
		item.CompletedAt = &completedAt
	}
	return item
}

func toTurnView(turn interviewsession.Turn) interviewapimodels.TurnView {
	return interviewapimodels.TurnView{
		QuestionIndex:  turn.QuestionIndex,
		QuestionText:   turn.QuestionText,
		TranscriptText: turn.TranscriptText,
		FeedbackText:   turn.FeedbackText,
		RecordedAt:     turn.RecordedAt,
	}
}

func toTurnViews(turns []interviewsession.Turn) []interviewapimodels.TurnView {
	result := make([]interviewapimodels.TurnView, 0, len(turns))
	for _, turn := range turns {
		result = append(result, toTurnView(turn))
	}
	return result
}
