package hackerrank

import "errors"

// ErrorKind tells which step of a fetch failed.
type ErrorKind int

const (
	// KindTransport: the request could not be sent or no response arrived.
	KindTransport ErrorKind = iota + 1
	// KindParse: a response arrived but is not a challenge list.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against a *FetchError.
var (
	ErrTransport = errors.New("hackerrank: transport failure")
	ErrParse     = errors.New("hackerrank: parse failure")
)

// FetchError is returned by Fetch for every failure after the settings were
// accepted. No records accompany it.
type FetchError struct {
	Kind ErrorKind
	// Step names what was being done, e.g. "send hackerrank request".
	Step string
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Step
	}
	return e.Step + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func transportError(step, url string, err error) *FetchError {
	return &FetchError{Kind: KindTransport, Step: step, URL: url, Err: err}
}

func parseError(url string, err error) *FetchError {
	return &FetchError{Kind: KindParse, Step: "parse hackerrank response", URL: url, Err: err}
}
