package gateway

import "time"

const (
	// DefaultTimeout applies when no http.Client is supplied.
	DefaultTimeout = 30 * time.Second

	projectsPath   = "/api/projects/"
	experiencePath = "/api/experience/"
)

// Operation names, used for logs, metrics and RequestError.Op.
const (
	OpListProjects     = "list_projects"
	OpListExperience   = "list_experience"
	OpSaveProject      = "save_project"
	OpSaveExperience   = "save_experience"
	OpDeleteProject    = "delete_project"
	OpDeleteExperience = "delete_experience"
)

// User-facing messages per operation.
const (
	MsgLoad             = "Error al cargar los datos"
	MsgSaveProject      = "Error al procesar proyecto"
	MsgSaveExperience   = "Error al procesar experiencia"
	MsgDeleteProject    = "Error al eliminar proyecto"
	MsgDeleteExperience = "Error al eliminar experiencia"
)
