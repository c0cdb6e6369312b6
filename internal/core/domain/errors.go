package domain

import "fmt"

type FetchErrorKind int

const (
	FetchErrorGeneric FetchErrorKind = iota
	FetchErrorServicesAvailability
	FetchErrorAuthorizationRequired
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorServicesAvailability:
		return "services_availability"
	case FetchErrorAuthorizationRequired:
		return "authorization_required"
	default:
		return "generic"
	}
}

// FetchError é o erro devolvido pela busca da playlist.
// StatusCode só é preenchido para FetchErrorServicesAvailability e
// ConsentURL só para FetchErrorAuthorizationRequired.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode ServiceStatus
	ConsentURL string
	Message    string
	Err        error
}

func NewServicesAvailabilityError(status ServiceStatus, err error) *FetchError {
	return &FetchError{
		Kind:       FetchErrorServicesAvailability,
		StatusCode: status,
		Message:    status.Description(),
		Err:        err,
	}
}

func NewAuthorizationRequiredError(consentURL string, err error) *FetchError {
	return &FetchError{
		Kind:       FetchErrorAuthorizationRequired,
		ConsentURL: consentURL,
		Message:    "authorization required",
		Err:        err,
	}
}

func NewGenericError(err error) *FetchError {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &FetchError{
		Kind:    FetchErrorGeneric,
		Message: msg,
		Err:     err,
	}
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchErrorServicesAvailability:
		return fmt.Sprintf("services unavailable (status %d): %s", e.StatusCode, e.Message)
	case FetchErrorAuthorizationRequired:
		if e.Err != nil {
			return fmt.Sprintf("authorization required: %v", e.Err)
		}
		return "authorization required"
	default:
		return e.Message
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
