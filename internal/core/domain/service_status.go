package domain

// ServiceStatus descreve a saúde da configuração do cliente da API do Google.
type ServiceStatus int

const (
	ServiceSuccess ServiceStatus = iota
	ServiceMissing
	ServiceInvalid
	ServiceDisabled
)

func (s ServiceStatus) Description() string {
	switch s {
	case ServiceSuccess:
		return "Google API client is ready"
	case ServiceMissing:
		return "OAuth client secret file not found"
	case ServiceInvalid:
		return "OAuth client secret file could not be parsed"
	case ServiceDisabled:
		return "YouTube Data API is not enabled for this Google Cloud project"
	default:
		return "unknown Google API client status"
	}
}

// IsUserResolvable informa se o usuário consegue corrigir o problema sozinho.
func (s ServiceStatus) IsUserResolvable() bool {
	switch s {
	case ServiceMissing, ServiceInvalid, ServiceDisabled:
		return true
	}
	return false
}
