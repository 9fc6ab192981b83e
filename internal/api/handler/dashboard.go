package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DashboardSourceHeader informa se o corpo veio do banco ou do fallback
const DashboardSourceHeader = "X-Dashboard-Source"

var errEmptySnapshot = errors.New("snapshot vazio retornado sem erro")

// GetDashboard retorna o snapshot do painel. Falhas do banco nunca chegam ao cliente:
// são registradas no log e substituídas pelo snapshot de fallback, sempre com status 200.
func GetDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		source := domain.SnapshotSourceLive
		snapshot, err := service.ComputeSnapshot(r.Context())
		if err == nil && snapshot == nil {
			err = errEmptySnapshot
		}

		if err != nil {
			fields := log.Fields{"source": domain.SnapshotSourceFallback}

			var dsErr *dashboarding.DataSourceError
			if errors.As(err, &dsErr) {
				fields["step"] = dsErr.Step
			}

			logger.WithError(err).WithFields(fields).Error("Erro ao calcular o painel, usando dados de fallback")

			snapshot = service.FallbackSnapshot()
			source = domain.SnapshotSourceFallback
		}

		body, err := json.Marshal(snapshot)
		if err != nil {
			logger.WithError(err).Error("Erro ao serializar o painel")
			apiErrors.WriteError(w, apiErrors.ErrEncodeResponse, "Erro ao enviar resposta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set(DashboardSourceHeader, string(source))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(body); err != nil {
			logger.WithError(err).Warn("Erro ao escrever resposta do painel")
		}
	}
}
