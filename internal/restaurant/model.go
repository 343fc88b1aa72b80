package restaurant

import "time"

type Restaurant struct {
	ID                 string            `json:"id"`
	OwnerID            string            `json:"owner_id"`
	Name               string            `json:"name"`
	POSSystem          *string           `json:"pos_system,omitempty"`
	POSIntegrationData map[string]string `json:"-"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
