package quiz

// DecisionKind enumerates the closed set of responses the engine can ask a
// driver to render.
type DecisionKind string

const (
	// DecisionPromptForQuestion: free text arrived with nothing pending.
	DecisionPromptForQuestion DecisionKind = "prompt_for_question"
	// DecisionGiveUpNoQuestion: give-up with nothing pending.
	DecisionGiveUpNoQuestion DecisionKind = "give_up_no_question"
	// DecisionGiveUpWithAnswer: give-up resolved the pending question.
	DecisionGiveUpWithAnswer DecisionKind = "give_up_with_answer"
	// DecisionCorrectAnswer: grading passed; Answer carries the reference.
	DecisionCorrectAnswer DecisionKind = "correct_answer"
	// DecisionIncorrectAnswer: grading failed; Answer carries the reference.
	DecisionIncorrectAnswer DecisionKind = "incorrect_answer"
	// DecisionNewQuestion: a fresh question was issued.
	DecisionNewQuestion DecisionKind = "new_question"
	// DecisionAbandonedThenNew: a pending question was surrendered and a
	// fresh one issued; PreviousAnswer carries the surrendered reference.
	DecisionAbandonedThenNew DecisionKind = "abandoned_then_new"
)

// Decision is the typed outcome of one engine operation. Drivers pattern
// match on Kind and render platform-specific messages from the payload
// fields; the engine itself never touches a chat API.
type Decision struct {
	Kind DecisionKind
	// Question is set for DecisionNewQuestion and DecisionAbandonedThenNew.
	Question string
	// Answer is the reference answer revealed on grading or give-up.
	Answer string
	// PreviousAnswer is the surrendered reference for DecisionAbandonedThenNew.
	PreviousAnswer string
}
