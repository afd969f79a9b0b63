package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		details    any
		wantStatus int
	}{
		{
			name:       "erro de carga",
			code:       ErrDataLoad,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "erro de conversão com detalhes",
			code:       ErrDataParse,
			details:    map[string]any{"row": 3, "column": "Revenue"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "dataset vazio",
			code:       ErrEmptyDataset,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "recarga em andamento",
			code:       ErrConflict,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, MessageFor(tt.code), tt.details)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, MessageFor(tt.code), body["message"])
			if tt.details == nil {
				assert.NotContains(t, body, "details")
			} else {
				assert.Contains(t, body, "details")
			}
		})
	}
}

func TestFromError_DoesNotExposeErrorText(t *testing.T) {
	err := errors.New("open /srv/data/monthly_revenue.csv: permission denied")

	apiErr := FromError(err, ErrDataLoad)

	assert.Equal(t, ErrDataLoad, apiErr.Code)
	assert.Equal(t, MessageFor(ErrDataLoad), apiErr.Message)
	assert.NotContains(t, apiErr.Message, "/srv/data")
	assert.NotContains(t, apiErr.Message, "permission denied")
}

func TestFromError_Nil(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrInvalidFormat).Code)
}

func TestMessageFor_Unknown(t *testing.T) {
	assert.Equal(t, MessageFor(ErrInternalServer), MessageFor("XYZ_999"))
}

func TestStatusFor_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}
