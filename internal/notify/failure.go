package notify

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// ConnectivityMessage is shown when a request was sent but nothing came back
	ConnectivityMessage = "could not connect to server, please check network connection."
	// LocalFallbackMessage is shown when a request failed before it was sent
	LocalFallbackMessage = "error occurred while sending request."
)

// Failure is a failed request. The network layer picks one of
// ResponseFailure, NoResponseFailure or LocalFailure at the point of failure.
type Failure interface {
	error
	failure()
}

// ResponseFailure means the server answered with an error status
type ResponseFailure struct {
	Status  int
	Message string
	Err     error
}

func (ResponseFailure) failure() {}

func (f ResponseFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("server responded %d: %v", f.Status, f.Err)
	}
	if f.Message != "" {
		return fmt.Sprintf("server responded %d: %s", f.Status, f.Message)
	}
	return fmt.Sprintf("server responded %d", f.Status)
}

func (f ResponseFailure) Unwrap() error { return f.Err }

// NoResponseFailure means the request went out but no response arrived
type NoResponseFailure struct {
	Err error
}

func (NoResponseFailure) failure() {}

func (f NoResponseFailure) Error() string {
	if f.Err != nil {
		return "no response: " + f.Err.Error()
	}
	return "no response"
}

func (f NoResponseFailure) Unwrap() error { return f.Err }

// LocalFailure means the request could not be sent at all
type LocalFailure struct {
	Message string
	Err     error
}

func (LocalFailure) failure() {}

func (f LocalFailure) Error() string {
	switch {
	case f.Message != "":
		return f.Message
	case f.Err != nil:
		return f.Err.Error()
	default:
		return "request not sent"
	}
}

func (f LocalFailure) Unwrap() error { return f.Err }

// normalize turns pointers into values and nil into an empty LocalFailure
func normalize(f Failure) Failure {
	switch v := f.(type) {
	case *ResponseFailure:
		if v != nil {
			return *v
		}
	case *NoResponseFailure:
		if v != nil {
			return *v
		}
	case *LocalFailure:
		if v != nil {
			return *v
		}
	case ResponseFailure, NoResponseFailure, LocalFailure:
		return v
	}
	return LocalFailure{}
}

// Describe derives the message shown to the user. The result is never empty.
func Describe(f Failure) string {
	switch v := normalize(f).(type) {
	case ResponseFailure:
		if v.Message != "" {
			return v.Message
		}
		return fmt.Sprintf("server error: %d", v.Status)
	case NoResponseFailure:
		return ConnectivityMessage
	case LocalFailure:
		if v.Message != "" {
			return v.Message
		}
	}
	return LocalFallbackMessage
}

// Translator is the last stop of a failed request: it logs the failure and
// shows a danger toast.
type Translator struct {
	log logrus.FieldLogger
}

// NewTranslator creates a Translator logging to log
func NewTranslator(log logrus.FieldLogger) *Translator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Translator{log: log.WithField("component", "translator")}
}

// Handle logs f, shows its message on n and returns the message. It does not panic.
func (t *Translator) Handle(n Notifier, f Failure) (message string) {
	f = normalize(f)
	message = Describe(f)

	defer func() {
		if r := recover(); r != nil {
			t.log.WithField("panic", r).Error("failed to show failure toast")
		}
	}()

	t.log.WithError(f).
		WithField("kind", fmt.Sprintf("%T", f)).
		Error("request failed")

	if n != nil {
		n.Show(message, SeverityDanger)
	}
	return message
}
