package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/internal/scheduler"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

const (
	CronJobTypeSnapshotProbe = "snapshot-probe"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	SnapshotProbeService *scheduler.SnapshotProbeService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeSnapshotProbe:
			if services.SnapshotProbeService == nil {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, "Verificação do painel não disponível", nil)
				return
			}

			started := services.SnapshotProbeService.TriggerManualRun()
			writeJSON(w, http.StatusAccepted, map[string]any{
				"job":     cronType,
				"started": started,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrUnknownJob, "Tipo de cron job inválido", map[string]string{"type": cronType})
		}
	}
}

// GetCronStatus retorna o status de todas as cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.SnapshotProbeService != nil {
			status[CronJobTypeSnapshotProbe] = services.SnapshotProbeService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}
