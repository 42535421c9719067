package session

// nextQuestionMsg asks the screen to pull the next question from the
// controller.
type nextQuestionMsg struct{}

// attemptEndMsg is sent when the attempt reached its length or the bank ran
// out of questions.
type attemptEndMsg struct{}
