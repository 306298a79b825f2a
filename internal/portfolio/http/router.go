package http

import "github.com/gin-gonic/gin"

// Register attaches the console routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/state", h.state)
	rg.POST("/reload", h.reload)
	rg.PUT("/tab", h.setTab)
	rg.PUT("/search", h.setSearch)
	rg.POST("/edit/cancel", h.cancelEdit)

	projects := rg.Group("/projects")
	projects.PATCH("/form", h.patchProjectForm)
	projects.POST("/form/image", h.uploadImage)
	projects.DELETE("/form/image", h.clearImage)
	projects.POST("/submit", h.submitProject)
	projects.POST("/:id/edit", h.editProject)
	projects.DELETE("/:id", h.deleteProject)

	experience := rg.Group("/experience")
	experience.PATCH("/form", h.patchExperienceForm)
	experience.POST("/submit", h.submitExperience)
	experience.POST("/:id/edit", h.editExperience)
	experience.DELETE("/:id", h.deleteExperience)
}
