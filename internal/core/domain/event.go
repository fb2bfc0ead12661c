package domain

import "github.com/google/uuid"

// StatusChange is the single event kind published on the event bus whenever
// an asset's transcoding status moves
type StatusChange struct {
	AssetID uuid.UUID         `json:"assetId"`
	Status  TranscodingStatus `json:"status"`
}
