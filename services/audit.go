package services

import (
	"fieldops-backend/models"
)

// The acting user is always passed in explicitly; services never read it from
// request-scoped globals. A nil actor (auth disabled, system jobs) leaves the
// audit fields untouched.

func stampCreate(m models.Auditable, actor *models.User) {
	if actor == nil {
		return
	}
	m.SetCreatedBy(actor.ID)
	m.SetUpdatedBy(actor.ID)
}

func stampUpdate(m models.Auditable, actor *models.User) {
	if actor == nil {
		return
	}
	m.SetUpdatedBy(actor.ID)
}
