package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

// JudgeService proxies code execution to a Judge0 instance and checks
// challenge submissions against their expected output. The upstream key
// never reaches the browser.
type JudgeService struct {
	appContext.DefaultService

	achievementSvc *AchievementService

	baseURL   string
	authToken string
	client    *http.Client
}

const JUDGE_SVC = "judge_svc"

const (
	judge0LanguageCpp    = 54 // C++ (GCC 9.4)
	judge0LanguagePython = 71 // Python 3

	judge0StatusAccepted = 3
)

// Challenge is one entry in the fixed coding challenge catalog. TestInput is
// fed to the program as stdin when the challenge reads input.
type Challenge struct {
	ID             string
	Title          string
	Language       string
	Difficulty     string
	Description    string
	StarterCode    string
	TestInput      string
	ExpectedOutput string
}

var challengeOrder = []string{
	"py-hello", "py-multi-line", "py-sum", "py-conditions",
	"cpp-sum", "cpp-max", "cpp-loop",
}

var challengeCatalog = map[string]Challenge{
	"py-hello": {
		ID:             "py-hello",
		Title:          "Python: Print a Greeting",
		Language:       "Python",
		Difficulty:     "Beginner",
		Description:    "Write a program that prints exactly: Hello, CodeLab! (including capitalization and punctuation).",
		StarterCode:    "print(\"Hello, CodeLab!\")\n",
		ExpectedOutput: "Hello, CodeLab!\n",
	},
	"py-multi-line": {
		ID:             "py-multi-line",
		Title:          "Python: Multi-line Output",
		Language:       "Python",
		Difficulty:     "Beginner",
		Description:    "Print exactly three separate lines: Line 1, Line 2, Line 3 (each on its own line).",
		StarterCode:    "# TODO: print three separate lines\nprint(\"Line 1\")\nprint(\"Line 2\")\nprint(\"Line 3\")\n",
		ExpectedOutput: "Line 1\nLine 2\nLine 3\n",
	},
	"py-sum": {
		ID:             "py-sum",
		Title:          "Python: Sum Two Numbers",
		Language:       "Python",
		Difficulty:     "Beginner",
		Description:    "Read two integers from input and print their sum. The numbers are on one line separated by a space.",
		StarterCode:    "# Read two integers from input and print their sum\n# Example input: 3 5\n\n",
		TestInput:      "3 5\n",
		ExpectedOutput: "8\n",
	},
	"py-conditions": {
		ID:             "py-conditions",
		Title:          "Python: Even or Odd",
		Language:       "Python",
		Difficulty:     "Intermediate",
		Description:    "Read one integer. If it is even, print \"Even\". If it is odd, print \"Odd\".",
		StarterCode:    "# Read a number and print \"Even\" or \"Odd\"\n\n",
		TestInput:      "4\n",
		ExpectedOutput: "Even\n",
	},
	"cpp-sum": {
		ID:             "cpp-sum",
		Title:          "C++: Sum Two Numbers",
		Language:       "C++",
		Difficulty:     "Beginner",
		Description:    "Read two integers from standard input and print their sum. Inputs are on one line, separated by space.",
		StarterCode:    "#include <iostream>\nusing namespace std;\n\nint main() {\n    int a, b;\n    // TODO: read a and b, then print their sum\n    return 0;\n}\n",
		TestInput:      "3 5\n",
		ExpectedOutput: "8\n",
	},
	"cpp-max": {
		ID:             "cpp-max",
		Title:          "C++: Maximum of Two",
		Language:       "C++",
		Difficulty:     "Beginner",
		Description:    "Read two integers and print the larger one. If they are equal, print either value.",
		StarterCode:    "#include <iostream>\nusing namespace std;\n\nint main() {\n    int a, b;\n    // TODO: read a and b, then print the larger one\n    return 0;\n}\n",
		TestInput:      "7 2\n",
		ExpectedOutput: "7\n",
	},
	"cpp-loop": {
		ID:             "cpp-loop",
		Title:          "C++: Print 1 to N",
		Language:       "C++",
		Difficulty:     "Intermediate",
		Description:    "Read an integer N and print the numbers from 1 to N, each on its own line.",
		StarterCode:    "#include <iostream>\nusing namespace std;\n\nint main() {\n    int n;\n    // TODO: read n and print numbers from 1 to n\n    return 0;\n}\n",
		TestInput:      "3\n",
		ExpectedOutput: "1\n2\n3\n",
	},
}

func (svc JudgeService) Id() string {
	return JUDGE_SVC
}

func (svc *JudgeService) Configure(ctx *appContext.Context) error {
	svc.baseURL = os.Getenv("JUDGE0_API_URL")
	if svc.baseURL == "" {
		svc.baseURL = "https://ce.judge0.com"
	}
	svc.authToken = os.Getenv("JUDGE0_AUTH_TOKEN")
	svc.client = &http.Client{Timeout: 30 * time.Second}
	return svc.DefaultService.Configure(ctx)
}

func (svc *JudgeService) Start() error {
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	return nil
}

// Status reports whether an execution backend is configured, without
// exposing its address.
func (svc *JudgeService) Status() *dto.RunnerStatusResponse {
	base := "missing"
	if svc.baseURL != "" {
		base = "configured"
	}
	return &dto.RunnerStatusResponse{Runner: "judge0", Base: base}
}

func mapLanguageID(language string) (int, error) {
	switch strings.ToLower(language) {
	case "c++", "cpp", "cxx":
		return judge0LanguageCpp, nil
	case "python", "py":
		return judge0LanguagePython, nil
	case "html":
		return 0, shared.NewBadRequestError(nil, "HTML is previewed client-side, not executed")
	default:
		return 0, shared.NewBadRequestError(nil, fmt.Sprintf("Unsupported language: %s. Use C++ or Python.", language))
	}
}

type judge0Submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin,omitempty"`
}

type judge0Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Message       string `json:"message"`
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Error string `json:"error"`
}

// RunCode executes one submission synchronously against Judge0 and folds
// stdout, stderr and compiler output into a single display string the way
// the editor expects it.
func (svc *JudgeService) RunCode(req dto.RunCodeRequest) (*dto.RunCodeResponse, error) {
	languageID, err := mapLanguageID(req.Language)
	if err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(judge0Submission{
		SourceCode: req.Code,
		LanguageID: languageID,
		Stdin:      req.TestInput,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/submissions?base64_encoded=false&wait=true", svc.baseURL)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if svc.authToken != "" {
		httpReq.Header.Set("X-Auth-Token", svc.authToken)
	}

	resp, err := svc.client.Do(httpReq)
	if err != nil {
		log.WithError(err).Error("Judge0 request failed")
		return nil, shared.NewServiceUnavailableError(err, "Code execution service unavailable. Try again in a moment.")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shared.NewServiceUnavailableError(err, "Code execution service unavailable. Try again in a moment.")
	}

	var result judge0Result
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, shared.NewServiceUnavailableError(err, "Code execution service unavailable. Try again in a moment.")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error
		if msg == "" {
			msg = result.Message
		}
		if msg == "" {
			msg = "Code execution service unavailable. Try again in a moment."
		}
		return nil, shared.NewAppError(resp.StatusCode, nil, msg)
	}

	run := buildRunResponse(&result)
	RecordCodeRun(req.Language, run.Accepted)
	return run, nil
}

func buildRunResponse(result *judge0Result) *dto.RunCodeResponse {
	accepted := result.Status.ID == judge0StatusAccepted

	output := result.Stdout
	if result.Stderr != "" {
		if output != "" {
			output += "\n"
		}
		output += result.Stderr
	}
	output = strings.TrimSpace(output)

	if !accepted && (result.CompileOutput != "" || result.Message != "") {
		detail := result.CompileOutput
		if detail == "" {
			detail = result.Message
		}
		if output != "" {
			output += "\n\n"
		}
		output += detail
	}

	if output == "" && !accepted {
		output = result.Message
		if output == "" {
			output = "Execution failed."
		}
	}

	return &dto.RunCodeResponse{
		Output:        output,
		Stdout:        result.Stdout,
		Stderr:        result.Stderr,
		CompileOutput: result.CompileOutput,
		StatusID:      result.Status.ID,
		Accepted:      accepted,
	}
}

// NormalizeOutput prepares program output for comparison: CRLF to LF, then
// trailing whitespace stripped. Interior whitespace stays significant.
func NormalizeOutput(text string) string {
	return strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), " \t\r\n")
}

// ==================== CHALLENGES ====================

func (svc *JudgeService) ListChallenges(userID string) (*dto.ChallengeListResponse, error) {
	solved, err := svc.solvedChallenges(userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChallengeResponse, 0, len(challengeOrder))
	for _, id := range challengeOrder {
		out = append(out, mapChallenge(challengeCatalog[id], solved[id]))
	}
	return &dto.ChallengeListResponse{Challenges: out}, nil
}

func (svc *JudgeService) GetChallenge(userID, id string) (*dto.ChallengeResponse, error) {
	ch, ok := challengeCatalog[id]
	if !ok {
		return nil, shared.NewNotFoundError(nil, fmt.Sprintf("Unknown challenge: %s", id))
	}

	solved, err := svc.achievementSvc.HasChallenge(userID, id)
	if err != nil {
		return nil, err
	}

	resp := mapChallenge(ch, solved)
	return &resp, nil
}

// SubmitChallenge runs the submission with the challenge's test input and
// compares normalized output. A pass records the challenge badge; re-passing
// an already-solved challenge is a no-op on the badge side.
func (svc *JudgeService) SubmitChallenge(userID, challengeID string, req dto.SubmitChallengeRequest) (*dto.SubmitChallengeResponse, error) {
	ch, ok := challengeCatalog[challengeID]
	if !ok {
		return nil, shared.NewNotFoundError(nil, fmt.Sprintf("Unknown challenge: %s", challengeID))
	}

	run, err := svc.RunCode(dto.RunCodeRequest{
		Language:  ch.Language,
		Code:      req.Code,
		TestInput: ch.TestInput,
	})
	if err != nil {
		return nil, err
	}

	passed := run.Accepted && NormalizeOutput(run.Output) == NormalizeOutput(ch.ExpectedOutput)

	resp := &dto.SubmitChallengeResponse{
		Passed:   passed,
		Output:   run.Output,
		Expected: ch.ExpectedOutput,
	}
	if passed {
		resp.AchievementAwarded = svc.achievementSvc.AwardChallenge(userID, ch.ID)
	}
	return resp, nil
}

func (svc *JudgeService) solvedChallenges(userID string) (map[string]bool, error) {
	keys, err := svc.achievementSvc.ChallengeKeys(userID)
	if err != nil {
		return nil, err
	}

	solved := make(map[string]bool, len(keys))
	for _, id := range keys {
		solved[id] = true
	}
	return solved, nil
}

func mapChallenge(ch Challenge, completed bool) dto.ChallengeResponse {
	return dto.ChallengeResponse{
		ID:          ch.ID,
		Title:       ch.Title,
		Language:    ch.Language,
		Difficulty:  ch.Difficulty,
		Description: ch.Description,
		StarterCode: ch.StarterCode,
		Input:       ch.TestInput,
		Completed:   completed,
	}
}
