package forms

import (
	"strings"
)

type Kind int

const (
	KindUnset Kind = iota
	KindInfo
	KindSuccess
	KindFailure
)

// Message is what a form shows after an action.
type Message struct {
	Text string
	Kind Kind
}

func Info(text string) Message {
	return Message{Text: text, Kind: KindInfo}
}

func Success(text string) Message {
	return Message{Text: text, Kind: KindSuccess}
}

func Failure(text string) Message {
	return Message{Text: text, Kind: KindFailure}
}

// Failed reports whether the message describes a failure. Messages without an
// explicit kind are classified by their wording.
func (m Message) Failed() bool {
	switch m.Kind {
	case KindFailure:
		return true
	case KindInfo, KindSuccess:
		return false
	}

	text := strings.ToLower(m.Text)
	return strings.Contains(text, "error") || strings.Contains(text, "failed")
}

func (m Message) Empty() bool {
	return m.Text == ""
}

func (m Message) String() string {
	return m.Text
}

type Route int

const (
	RouteNone Route = iota
	RouteFeed
	RouteLogin
	RouteBack
)

func (r Route) String() string {
	switch r {
	case RouteFeed:
		return "feed"
	case RouteLogin:
		return "login"
	case RouteBack:
		return "back"
	default:
		return "none"
	}
}

// Outcome of a form submission: the message to display and where to go next.
type Outcome struct {
	Message Message
	Next    Route
}
