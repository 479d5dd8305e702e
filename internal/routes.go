package internal

import (
	"net/http"

	"alertd/internal/controllers"
	"alertd/internal/providers"
	"alertd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/alerts", http.HandlerFunc(apiController.GetAlerts))
	routers.Get("/alerts/unread", http.HandlerFunc(apiController.GetUnread))
	routers.Get("/scores", http.HandlerFunc(apiController.GetScores))
	routers.Get("/status", http.HandlerFunc(apiController.GetStatus))
	routers.Post("/alerts/mark_read", http.HandlerFunc(apiController.MarkRead))
	routers.Post("/alerts/mark_unread", http.HandlerFunc(apiController.MarkUnread))
	routers.Post("/alerts/read_all", http.HandlerFunc(apiController.MarkAllRead))
	routers.Post("/alerts/delete", http.HandlerFunc(apiController.DeleteAlert))
	routers.Post("/alerts/clear", http.HandlerFunc(apiController.ClearHistory))
	return routers
}
