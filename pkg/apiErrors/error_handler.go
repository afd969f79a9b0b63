package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de dados do pipeline de receita
	ErrDataLoad     = "DATA_001" // Fonte ausente, ilegível ou sem coluna obrigatória
	ErrDataParse    = "DATA_002" // Célula com data ou valor inválido
	ErrEmptyDataset = "DATA_003" // Tabela sem registros

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrNotFound            = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método HTTP não suportado pela rota

	// Erros do servidor
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro em serviço externo
	ErrConflict        = "SRV_005" // Operação já em andamento
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrDataLoad:            http.StatusServiceUnavailable,
	ErrDataParse:           http.StatusUnprocessableEntity,
	ErrEmptyDataset:        http.StatusUnprocessableEntity,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrConflict:            http.StatusConflict,
}

// Mensagens fixas enviadas ao cliente. O erro completo fica apenas no log.
var messageMap = map[string]string{
	ErrDataLoad:            "Fonte de dados indisponível",
	ErrDataParse:           "Fonte de dados com valor inválido",
	ErrEmptyDataset:        "Fonte de dados sem registros",
	ErrInvalidRequest:      "Requisição inválida",
	ErrMissingRequiredData: "Dados obrigatórios ausentes",
	ErrInvalidFormat:       "Formato de dados inválido",
	ErrNotFound:            "Rota não encontrada",
	ErrMethodNotAllowed:    "Método não permitido",
	ErrInternalServer:      "Erro interno do servidor",
	ErrExternalService:     "Erro em serviço externo",
	ErrConflict:            "Operação já em andamento",
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// MessageFor retorna a mensagem pública de um código de erro
func MessageFor(code string) string {
	message, exists := messageMap[code]
	if !exists {
		return messageMap[ErrInternalServer]
	}
	return message
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

// FromError cria um erro de API a partir de um erro Go.
// A mensagem é sempre a do código: err.Error() pode conter caminhos e erros de driver.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: MessageFor(ErrInternalServer),
		}
	}

	return APIError{
		Code:    code,
		Message: MessageFor(code),
	}
}
