package component

type Health struct {
	Damage float64
	// ShowDamageUntil is the scene time the hit flash ends. -1 disables
	// flashing for good.
	ShowDamageUntil float64
}

var HealthComponent = NewComponent[Health]()
