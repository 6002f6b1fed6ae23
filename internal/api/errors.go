package api

import "errors"

// Kind classifies a failed API call. Every call returns at most one *Error;
// views render all three kinds as a dismissible banner, none are fatal.
type Kind int

const (
	// KindNetwork: the request could not complete at all.
	KindNetwork Kind = iota
	// KindServer: a non-2xx response, with the server's message when it
	// sent one.
	KindServer
	// KindParse: a 2xx response whose body could not be decoded.
	KindParse
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// UserMessage extracts the message to show for any error coming out of the
// client. Unknown errors degrade to a generic notice.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Não foi possível completar a operação. Tente novamente."
}

func networkError(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "Não foi possível contactar o servidor. Verifique sua conexão.",
		cause:   cause,
	}
}

func parseError(cause error) *Error {
	return &Error{
		Kind:    KindParse,
		Message: "O servidor retornou uma resposta inválida.",
		cause:   cause,
	}
}
