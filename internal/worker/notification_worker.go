package worker

import (
	"github.com/phoenix-adventures/trip-service/internal/events"
	"github.com/phoenix-adventures/trip-service/internal/service"
)

// StartNotificationWorker subscribes the email notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil || dispatcher == nil {
		return
	}
	notificationService.Register(dispatcher)
}
