package request_models

// QuizRequest asks for a three-question trivia quiz about a destination.
type QuizRequest struct {
	Destination string `json:"destination" binding:"required"`
}
