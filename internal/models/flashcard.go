package models

// Flashcard is ephemeral: generated per request, handed to the client,
// never persisted. Wire keys match the browser client (q/a/hint/grade).
type Flashcard struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
	Hint     string `json:"hint"`
	Grade    int    `json:"grade"`
}

type CheckAnswerRequest struct {
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type CheckAnswerResponse struct {
	Correct bool `json:"correct"`
}

type AskQuestionRequest struct {
	Question  string       `json:"question"`
	Flashcard AskFlashcard `json:"flashcard"`
}

type AskFlashcard struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

type AskQuestionResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
