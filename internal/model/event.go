package model

// Identity is the authenticated user: the username plus the opaque credential
// the backend issued for it. Owned by the session controller; mirrored into
// the credential store for persistence across restarts.
type Identity struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ResultUpdateEvent is one message from the judge's push channel: the judge
// advanced some submission's grading state. ID matches
// SubmissionRecord.JudgeID.
type ResultUpdateEvent struct {
	ID     string       `json:"id"`
	Result ResultStatus `json:"result"`
}
