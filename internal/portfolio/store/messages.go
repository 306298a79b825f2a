package store

const (
	MsgProjectCreated    = "Proyecto agregado correctamente"
	MsgProjectUpdated    = "Proyecto actualizado correctamente"
	MsgProjectDeleted    = "Proyecto eliminado correctamente"
	MsgExperienceCreated = "Experiencia agregada correctamente"
	MsgExperienceUpdated = "Experiencia actualizada correctamente"
	MsgExperienceDeleted = "Experiencia eliminada correctamente"
)
