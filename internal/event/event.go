package event

type Type string

const (
	// Resolved covers both a real reply and a reply without a usable response field.
	Resolved Type = "resolved"
	Failed   Type = "failed"
)

// Event is the outcome of one chat request, tagged with the request it
// answers and the transcript generation that request was issued against.
type Event struct {
	Type       Type
	RequestID  string
	Generation uint64
	Data       any
}

type ReplyData struct {
	Text      string
	Malformed bool
}

type FaultData struct {
	Text string
}
