package domain

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeNoNetwork
	NoticeEmptyResult
	NoticeGenericFailure
	NoticeServicesRequired
	NoticeRequestCancelled
)

// Notice é a mensagem curta mostrada ao usuário no fim de uma tentativa.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func NewNotice(kind NoticeKind, detail string) Notice {
	var msg string
	switch kind {
	case NoticeNoNetwork:
		msg = "No network connection available."
	case NoticeEmptyResult:
		msg = "No results returned."
	case NoticeGenericFailure:
		msg = "The following error occurred: " + detail
	case NoticeServicesRequired:
		msg = "This app requires a working Google API client configuration. Fix it and press Ctrl+R."
	case NoticeRequestCancelled:
		msg = "Request cancelled."
	}
	return Notice{Kind: kind, Message: msg}
}

func (n Notice) IsZero() bool {
	return n.Kind == NoticeNone
}
