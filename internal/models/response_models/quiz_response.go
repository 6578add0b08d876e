package response_models

type QuizQuestion struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Answer    int      `json:"answer"`
	Rationale string   `json:"rationale"`
}
