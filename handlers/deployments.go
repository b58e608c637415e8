package handlers

import (
	"net/http"

	"ott-manager.app/api/internal/catalog"
	"ott-manager.app/api/internal/presentation"
	"ott-manager.app/api/models"
)

type DeploymentCard struct {
	models.Deployment
	Badge        presentation.Badge `json:"badge"`
	BadgeClasses string             `json:"badge_classes"`
}

type DeploymentListResponse struct {
	Deployments []DeploymentCard `json:"deployments"`
	Count       int              `json:"count"`
	Status      string           `json:"status"`
}

func (s *Server) ListDeployments(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")

	status := catalog.All
	if raw != "" && raw != catalog.All {
		if parsed, err := models.ParseDeploymentStatus(raw); err == nil {
			status = string(parsed)
		} else {
			loggerFrom(r.Context()).Warn("Unrecognized deployment status filter, showing all", map[string]interface{}{
				"status": raw,
			})
		}
	}

	deployments := catalog.FilterDeployments(s.Catalog.Deployments(), status)
	cards := make([]DeploymentCard, 0, len(deployments))
	for _, d := range deployments {
		badge := presentation.ClassifyDeployment(string(d.Status))
		cards = append(cards, DeploymentCard{
			Deployment:   d,
			Badge:        badge,
			BadgeClasses: badge.Classes(),
		})
	}

	writeJSON(w, r, http.StatusOK, DeploymentListResponse{
		Deployments: cards,
		Count:       len(cards),
		Status:      status,
	})
}
