// Package csvfile lê tabelas de receita de arquivos CSV locais
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-dashboard-api/internal/usecases/revenue"
)

const utf8BOM = "\ufeff"

// Source é uma fonte tabular baseada em arquivo CSV
type Source struct {
	path string
}

// New cria uma fonte para o arquivo informado. O caminho é resolvido para absoluto
// para que a identidade da fonte não dependa do diretório de trabalho.
func New(path string) *Source {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Source{path: path}
}

// Path retorna o caminho absoluto do arquivo
func (s *Source) Path() string {
	return s.path
}

// Fingerprint identifica o arquivo pelo caminho, data de modificação e tamanho
func (s *Source) Fingerprint(_ context.Context) (revenue.SourceIdentity, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return revenue.SourceIdentity{}, revenue.NewLoadError(s.path, "arquivo inacessível", err)
	}

	if info.IsDir() {
		return revenue.SourceIdentity{}, revenue.NewLoadError(s.path, "caminho é um diretório", nil)
	}

	return revenue.SourceIdentity{
		Name:    s.path,
		Version: fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()),
	}, nil
}

// ReadTable lê o arquivo inteiro. Linhas em branco são ignoradas.
func (s *Source) ReadTable(ctx context.Context) (*revenue.Table, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, revenue.NewLoadError(s.path, "erro ao abrir arquivo", err)
	}
	defer file.Close()

	table, err := readCSV(ctx, file)
	if err != nil {
		return nil, revenue.NewLoadError(s.path, "erro ao ler CSV", err)
	}

	return table, nil
}

func readCSV(ctx context.Context, r io.Reader) (*revenue.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("arquivo vazio, sem cabeçalho")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cabeçalho inválido")
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rows := make([][]string, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "linha %d", len(rows)+1)
		}

		rows = append(rows, row)
	}

	return &revenue.Table{Header: header, Rows: rows}, nil
}
