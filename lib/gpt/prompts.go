package gpthandler

const (
	QuestionsSysPromt = "Ты опытный интервьюер. Готовишь кандидата к собеседованию на конкретную вакансию."
	QuestionsTemplate = `Описание вакансии:
---
%s
---
Резюме кандидата:
---
%s
---
Сгенерируй %d вопросов для собеседования, учитывая требования вакансии и опыт кандидата.
Вопросы задаются голосом, поэтому каждый вопрос должен быть коротким и понятным на слух.
Ответ верни строго в формате JSON без пояснений: {"questions":["…","…"]}`

	FeedbackSysPromt = "Ты доброжелательный карьерный консультант. Даешь кандидату короткую обратную связь по ответу на вопрос собеседования."
	FeedbackTemplate = `Вопрос: %s
Ответ кандидата: %s
Дай обратную связь в 2-3 предложениях: что получилось хорошо и что стоит улучшить.`

	AnalyzeSysPromt = "Ты ИИ-рекрутер. Анализируешь стенограмму собеседования."
	AnalyzeTemplate = `Описание вакансии:
---
%s
---
Стенограмма интервью:
---
%s
---
Оцени кандидата по шкале от 1 до 10 по критериям:
- Коммуникация
- Соответствие вакансии
- Уверенность
И добавь резюме из 3 строк.`

	// EmptyAnswerText подставляется в промт вместо пустого ответа
	EmptyAnswerText = "(кандидат не ответил)"
)
