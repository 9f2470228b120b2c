package domain

const (
	FailureSentinel  = "Error asking question"
	NoAnswerSentinel = "No answer returned."

	FailureMessage = "Ask failed"
	SuccessMessage = "Answer received"
)

// Reply is a decoded /ask reply. Found is false when the body carried no
// usable answer field; Degraded additionally marks a body that was not JSON.
// Notice holds an "error" message the backend put in a 2xx body.
type Reply struct {
	Answer   string
	Found    bool
	Degraded bool
	Notice   string
}

// Text is the value stored as the answer for a successful reply.
func (r Reply) Text() string {
	if !r.Found || r.Answer == "" {
		return NoAnswerSentinel
	}
	return r.Answer
}
