package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-dashboard-api/pkg/apiErrors"
)

// CacheReloader dispara e acompanha a recarga do cache de receita
type CacheReloader interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// ReloadCache dispara uma recarga do cache em segundo plano
func ReloadCache(reloader CacheReloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReloadCache")

		if !reloader.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "Recarga do cache já está em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Recarga do cache iniciada com sucesso",
		})
	}
}

// GetCacheStatus retorna o status da recarga e do cache
func GetCacheStatus(reloader CacheReloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reloader.GetStatus())
	}
}
