package model

import "time"

const (
	UtilityElectricity = "Electricity"
	UtilityGas         = "Gas"
)

type Utility struct {
	ID        int64
	Utility   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Supplier struct {
	ID         int64
	Supplier   string
	MeterEmail *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
