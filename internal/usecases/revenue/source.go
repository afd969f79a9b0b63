package revenue

import (
	"context"
	"strings"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// SourceIdentity identifica uma fonte tabular e a versão do seu conteúdo
type SourceIdentity struct {
	Name    string // Ex.: caminho absoluto do arquivo ou postgres:tabela
	Version string // Ex.: mtime+tamanho do arquivo, contagem+hash da tabela
}

// Key é a chave de cache da fonte
func (id SourceIdentity) Key() string {
	return id.Name + "@" + id.Version
}

// Table é o conteúdo bruto de uma fonte: cabeçalho e linhas na ordem original
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex retorna a posição da coluna no cabeçalho, ignorando caixa e espaços
func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Header {
		if strings.EqualFold(strings.TrimSpace(column), name) {
			return i
		}
	}
	return -1
}

// TableSource é uma fonte tabular externa (arquivo CSV, tabela no banco)
type TableSource interface {
	// Fingerprint identifica a versão atual da fonte sem ler todo o conteúdo
	Fingerprint(ctx context.Context) (SourceIdentity, error)

	// ReadTable lê a fonte inteira para a memória
	ReadTable(ctx context.Context) (*Table, error)
}
