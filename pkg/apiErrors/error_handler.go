package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de requisição
	ErrRouteNotFound    = "VAL_002" // Rota inexistente
	ErrMethodNotAllowed = "VAL_003" // Método não suportado pela rota

	// Erros de agendamento
	ErrUnknownJob     = "JOB_001" // Tipo de job desconhecido
	ErrJobUnavailable = "JOB_002" // Job não configurado nesta instância

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrEncodeResponse = "SRV_003" // Falha ao serializar a resposta
)

var httpStatusMap = map[string]int{
	ErrRouteNotFound:    http.StatusNotFound,
	ErrMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrUnknownJob:       http.StatusNotFound,
	ErrJobUnavailable:   http.StatusServiceUnavailable,
	ErrInternalServer:   http.StatusInternalServerError,
	ErrEncodeResponse:   http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP de um código de erro, 500 para códigos desconhecidos
func StatusFor(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
