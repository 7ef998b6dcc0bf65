package handlechatmessage

type Input struct {
	AgentID int64  `json:"agentId"`
	Message string `json:"message"`
}

// Output is written back as process variables.
type Output struct {
	Response string `json:"response"`
	Intent   string `json:"intent"`
	Outcome  string `json:"outcome"`
	// ReasonCode names the recovered error behind a guidance or apology reply.
	ReasonCode string `json:"reasonCode,omitempty"`
}
