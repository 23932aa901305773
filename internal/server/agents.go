package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type agentView struct {
	ID       int64  `json:"id"`
	UserName string `json:"user_name"`
	AgenCode string `json:"agen_code"`
	IsActive bool   `json:"is_active"`
}

// ListAgents handles GET /v1/agents.
func (s *Server) ListAgents(c *gin.Context) {
	agents, err := s.agentsvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]agentView, 0, len(agents))
	for _, agent := range agents {
		views = append(views, agentView{
			ID:       agent.ID,
			UserName: agent.UserName,
			AgenCode: agent.AgenCode,
			IsActive: agent.IsActive,
		})
	}
	c.JSON(http.StatusOK, gin.H{"agents": views})
}
