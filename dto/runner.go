package dto

// ==================== CODE RUNNER DTOs ====================

type RunCodeRequest struct {
	Language  string `json:"language" validate:"required" example:"Python"`
	Code      string `json:"code" validate:"required"`
	TestInput string `json:"test_input,omitempty" example:"3 5\n"`
}

func (r RunCodeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type RunCodeResponse struct {
	Output        string `json:"output"`
	Stdout        string `json:"stdout,omitempty"`
	Stderr        string `json:"stderr,omitempty"`
	CompileOutput string `json:"compile_output,omitempty"`
	StatusID      int    `json:"status_id"`
	Accepted      bool   `json:"accepted"`
}

type RunnerStatusResponse struct {
	Runner string `json:"runner"`
	Base   string `json:"base"`
}

// ==================== CHALLENGE DTOs ====================

type ChallengeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	StarterCode string `json:"starter_code"`
	Input       string `json:"input,omitempty"`
	Completed   bool   `json:"completed"`
}

type ChallengeListResponse struct {
	Challenges []ChallengeResponse `json:"challenges"`
}

type SubmitChallengeRequest struct {
	Code string `json:"code" validate:"required"`
}

func (s SubmitChallengeRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SubmitChallengeResponse struct {
	Passed             bool                `json:"passed"`
	Output             string              `json:"output"`
	Expected           string              `json:"expected,omitempty"`
	AchievementAwarded *AchievementAwarded `json:"achievement_awarded,omitempty"`
}
