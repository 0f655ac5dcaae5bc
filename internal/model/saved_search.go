package model

import (
	"time"

	"github.com/google/uuid"
)

type SavedSearch struct {
	ID          uuid.UUID                  `json:"id"`
	UserID      string                     `json:"user_id"`
	PortfolioID int                        `json:"portfolio_id"`
	Name        string                     `json:"name"`
	Description *string                    `json:"description,omitempty"`
	Parameters  AssetWatchSearchParameters `json:"parameters"`
	IsActive    bool                       `json:"is_active"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

type SavedSearchInput struct {
	PortfolioID int                        `json:"portfolio_id" binding:"required"`
	Name        string                     `json:"name" binding:"required"`
	Description *string                    `json:"description"`
	Parameters  AssetWatchSearchParameters `json:"parameters"`
	IsActive    *bool                      `json:"is_active"`
}

type SavedSearchRunReport struct {
	ID              uuid.UUID `json:"id"`
	SavedSearchID   uuid.UUID `json:"saved_search_id"`
	RunAt           time.Time `json:"run_at"`
	Status          string    `json:"status"`
	NumberOfResults int       `json:"number_of_results"`
	ReportURL       *string   `json:"report_url,omitempty"`
}
