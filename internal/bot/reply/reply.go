// Package reply renders engine decisions into the message texts shared by
// both front-ends. Keyboard construction stays platform-specific.
package reply

import (
	"fmt"

	"quizbot/internal/quiz"
)

// Menu button labels. Both platforms show the same three buttons.
const (
	ButtonNewQuestion = "Новый вопрос"
	ButtonGiveUp      = "Сдаться"
	ButtonMyScore     = "Мой счёт"
)

// Fixed texts.
const (
	Greeting        = "Добро пожаловать в историческую викторину. Выберите действие!"
	GreetingVK      = "Рады приветствовать вас в нашей викторине!"
	QuizStopped     = "Викторина остановлена."
	ScoreNotKept    = "Счёт пока не ведётся. Сыграйте в викторину!"
	StoreTrouble    = "Что-то пошло не так. Попробуйте ещё раз чуть позже."
	promptQuestion  = "Нажмите на кнопку «Новый вопрос» для получения вопроса."
	giveUpNoPending = "Еще не получили вопрос, а уже сдаетесь? Попробуйте сыграть в викторину.\nНажмите на кнопку «Новый вопрос»."
)

// Text renders a decision into the message to send. The second return value
// carries a follow-up message when the decision requires two sends (old
// answer first, then the fresh question).
func Text(d quiz.Decision) (string, string) {
	switch d.Kind {
	case quiz.DecisionPromptForQuestion:
		return promptQuestion, ""
	case quiz.DecisionGiveUpNoQuestion:
		return giveUpNoPending, ""
	case quiz.DecisionGiveUpWithAnswer:
		return fmt.Sprintf("Жаль... Правильный ответ:\n%s\nХотите новый вопрос? Выберите в меню.", d.Answer), ""
	case quiz.DecisionCorrectAnswer:
		return fmt.Sprintf("Правильно! Полный ответ:\n%s\nХотите новый вопрос? Выберите в меню.", d.Answer), ""
	case quiz.DecisionIncorrectAnswer:
		return fmt.Sprintf("К сожалению нет! Правильный ответ:\n%s\nХотите новый вопрос? Выберите в меню.", d.Answer), ""
	case quiz.DecisionNewQuestion:
		return d.Question, ""
	case quiz.DecisionAbandonedThenNew:
		first := fmt.Sprintf("А как же предыдущий вопрос?\nПравильный ответ:\n%s", d.PreviousAnswer)
		second := fmt.Sprintf("Ваш новый вопрос:\n%s", d.Question)
		return first, second
	}
	return promptQuestion, ""
}
