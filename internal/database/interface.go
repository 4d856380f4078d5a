package database

import "github.com/akyairhashvil/sprintboard/internal/gateway"

var (
	_ gateway.Collections     = (*Database)(nil)
	_ gateway.SprintActivator = (*sprintTable)(nil)
)
