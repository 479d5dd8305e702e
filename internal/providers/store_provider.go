package providers

import (
	"alertd/internal/models"
	"alertd/internal/structures"
)

func NewAlertStoreProvider(conf *structures.Config) *models.AlertStore {
	return models.NewAlertStore(conf.Alerts.MaxHistory, conf.Alerts.DailyCap)
}
