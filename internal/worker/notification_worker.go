package worker

import (
	"github.com/offloadr/connect-api/internal/realtime"
	"github.com/offloadr/connect-api/internal/service"
)

// StartNotificationWorker registers the notification fan-out handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartChangeFeedWorker registers the live change-feed handlers.
func StartChangeFeedWorker(publisher *realtime.Publisher) {
	if publisher == nil {
		return
	}
	publisher.RegisterHandlers()
}
