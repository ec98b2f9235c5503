package domain

import (
	"errors"
)

var (
	MessageSuccessFindServiceCenters = "service centers retrieved successfully"
	MessageNoServiceCenters          = "no service centers found nearby"

	MessageFailedFindServiceCenters = "failed to retrieve service centers"

	ErrInvalidCoordinates       = errors.New("invalid coordinates")
	ErrServiceCenterUnavailable = errors.New("no service centers found nearby")
	ErrPlacesProcessingFailed   = errors.New("places lookup failed")
)

type (
	FindServiceCentersRequest struct {
		Latitude  float64 `json:"latitude" validate:"required,latitude"`
		Longitude float64 `json:"longitude" validate:"required,longitude"`
		Radius    float64 `json:"radius"`
	}

	ServiceCenter struct {
		Name      string  `json:"name"`
		Address   string  `json:"address"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Rating    float64 `json:"rating,omitempty"`
		OpenNow   *bool   `json:"openNow,omitempty"`
	}
)
