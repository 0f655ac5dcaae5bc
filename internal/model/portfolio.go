package model

import "time"

type Portfolio struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	UserID           string    `json:"user_id"`
	NumberOfAircraft int       `json:"number_of_aircraft"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PortfolioInput struct {
	Name        string `json:"name" binding:"required"`
	AircraftIDs []int  `json:"aircraft_ids"`
}
