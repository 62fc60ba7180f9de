package model

import "time"

type Language string

const (
	LangC      Language = "C"
	LangCPP    Language = "CPP"
	LangPython Language = "PYTHON"
	LangJava   Language = "JAVA"
)

// Languages lists every language the judge accepts, in display order.
var Languages = []Language{LangC, LangCPP, LangPython, LangJava}

func (l Language) Valid() bool {
	switch l {
	case LangC, LangCPP, LangPython, LangJava:
		return true
	}
	return false
}

// DisplayName returns the human-readable name used by the CLI.
func (l Language) DisplayName() string {
	switch l {
	case LangC:
		return "C"
	case LangCPP:
		return "C++"
	case LangPython:
		return "Python"
	case LangJava:
		return "Java"
	}
	return string(l)
}

type ResultType string

const (
	ResultWaiting      ResultType = "WAITING"
	ResultProcessing   ResultType = "PROCESSING"
	ResultCompileError ResultType = "COMPILE_ERROR"
	ResultRuntimeError ResultType = "RUNTIME_ERROR"
	ResultTimeLimit    ResultType = "TIME_LIMIT"
	ResultMemoryLimit  ResultType = "MEMORY_LIMIT"
	ResultWrongAnswer  ResultType = "WRONG_ANSWER"
	ResultCorrect      ResultType = "CORRECT"
)

// ResultStatus is the grading outcome of a submission. Message is set for
// PROCESSING and the error variants; Time (ms) and Memory (KB) are only
// meaningful when Type is CORRECT.
type ResultStatus struct {
	Type    ResultType `json:"type"`
	Message string     `json:"message,omitempty"`
	Time    int64      `json:"time,omitempty"`
	Memory  int64      `json:"memory,omitempty"`
}

// Pending reports whether the judge is still working on the submission.
func (r ResultStatus) Pending() bool {
	return r.Type == ResultWaiting || r.Type == ResultProcessing
}

// HasMetrics reports whether Time and Memory carry trustworthy figures.
func (r ResultStatus) HasMetrics() bool {
	return r.Type == ResultCorrect
}

// SubmissionRecord is one solution attempt as returned by the history
// endpoint. JudgeID is unique within a history listing and is the merge key
// for live result updates.
type SubmissionRecord struct {
	JudgeID      string       `json:"judgeId"`
	Username     string       `json:"username"`
	ProblemID    string       `json:"problemId"`
	Language     Language     `json:"language"`
	Source       string       `json:"source,omitempty"`
	SourceLength int64        `json:"sourceLength"`
	SubmittedAt  time.Time    `json:"at"`
	Result       ResultStatus `json:"result"`
}
