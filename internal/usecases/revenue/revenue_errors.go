package revenue

import (
	"errors"
	"fmt"

	"github.com/vfg2006/revenue-dashboard-api/pkg/apiErrors"
)

// Erros específicos do pipeline de receita
var (
	// Fonte ausente, ilegível ou sem uma coluna obrigatória
	ErrDataLoad = errors.New("data load error")
	// Célula que não pôde ser convertida para data ou valor
	ErrDataParse = errors.New("data parse error")
	// Agregação pedida sobre um dataset sem registros
	ErrEmptyDataset = errors.New("empty dataset")
)

// Códigos de erro expostos para a API
const (
	CodeDataLoad     = apiErrors.ErrDataLoad
	CodeDataParse    = apiErrors.ErrDataParse
	CodeEmptyDataset = apiErrors.ErrEmptyDataset
)

// PipelineError é um erro com contexto adicional sobre a fonte e a célula envolvidas
type PipelineError struct {
	Err     error  // Erro base (um dos sentinelas acima)
	Code    string // Código de erro para API
	Source  string // Identidade da fonte (quando aplicável)
	Row     int    // Linha de dados, começando em 1 (0 quando não se aplica)
	Column  string // Coluna envolvida (quando aplicável)
	Details string // Detalhes adicionais
	Cause   error  // Erro de origem (IO, driver, conversão)
}

// Error implementa a interface error
func (e *PipelineError) Error() string {
	msg := e.Err.Error()
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Source)
	}
	if e.Row > 0 {
		msg = fmt.Sprintf("%s: linha %d", msg, e.Row)
	}
	if e.Column != "" {
		msg = fmt.Sprintf("%s: coluna %s", msg, e.Column)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap retorna o erro sentinela e a causa
func (e *PipelineError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewLoadError cria um erro de carga para uma fonte
func NewLoadError(source string, details string, cause error) *PipelineError {
	return &PipelineError{
		Err:     ErrDataLoad,
		Code:    CodeDataLoad,
		Source:  source,
		Details: details,
		Cause:   cause,
	}
}

// NewParseError cria um erro de conversão para uma célula
func NewParseError(source string, row int, column string, cause error) *PipelineError {
	return &PipelineError{
		Err:    ErrDataParse,
		Code:   CodeDataParse,
		Source: source,
		Row:    row,
		Column: column,
		Cause:  cause,
	}
}

// ErrorCode retorna o código de API associado ao erro, ou "" se não for do pipeline
func ErrorCode(err error) string {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Code
	}

	switch {
	case errors.Is(err, ErrDataLoad):
		return CodeDataLoad
	case errors.Is(err, ErrDataParse):
		return CodeDataParse
	case errors.Is(err, ErrEmptyDataset):
		return CodeEmptyDataset
	}
	return ""
}
