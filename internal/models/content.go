package models

import (
	"time"

	"github.com/google/uuid"
)

type Content struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	BannerImage string    `json:"bannerImage"`
	Description string    `json:"description"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Category struct {
	ID           uuid.UUID `json:"id"`
	CategoryName string    `json:"categoryName"`
	Labels       []string  `json:"labels"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
