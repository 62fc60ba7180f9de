package model

// ProblemSummary is one row of the problem list.
type ProblemSummary struct {
	ProblemID string `json:"problemId"`
	Title     string `json:"title"`
}

type TestCase struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Example bool   `json:"example"`
}

// Problem is the full problem payload used by the detail, create and update
// endpoints. TimeLimit is in milliseconds, MemoryLimit in KB.
type Problem struct {
	ProblemID         string     `json:"problemId"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	InputDescription  string     `json:"inputDescription"`
	OutputDescription string     `json:"outputDescription"`
	TestCases         []TestCase `json:"testCases"`
	TimeLimit         int64      `json:"timeLimit"`
	MemoryLimit       int64      `json:"memoryLimit"`
}
