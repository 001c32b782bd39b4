package worker

import (
	"github.com/hanzong05/kitapos-middleware/internal/service"
)

// StartAlertWorker registers alert handlers on the dispatcher.
func StartAlertWorker(alertService *service.AlertService) {
	if alertService == nil {
		return
	}
	alertService.RegisterHandlers()
}
