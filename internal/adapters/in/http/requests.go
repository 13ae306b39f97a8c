package http

import (
	"morna/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type NewOrderRequest struct {
	ID               *openapi_types.UUID `json:"id,omitempty"`
	ClientID         string              `json:"clientId"`
	ProductName      string              `json:"productName"`
	Quantity         int                 `json:"quantity"`
	ChinaStaffID     *openapi_types.UUID `json:"chinaStaffId,omitempty"`
	VenezuelaStaffID *openapi_types.UUID `json:"venezuelaStaffId,omitempty"`
}

// QuoteRequest carries the unit price as a decimal string, e.g. "12.50".
type QuoteRequest struct {
	UnitPrice string `json:"unitPrice"`
}

type AdvanceRequest struct {
	Next int `json:"next"`
}

type AssignToBoxRequest struct {
	BoxID openapi_types.UUID `json:"boxId"`
}

type AssignToContainerRequest struct {
	ContainerID openapi_types.UUID `json:"containerId"`
}

// NewEntityRequest optionally fixes the id of a new box or container.
type NewEntityRequest struct {
	ID *openapi_types.UUID `json:"id,omitempty"`
}

type SendContainerRequest struct {
	TrackingNumber  string             `json:"trackingNumber"`
	TrackingCompany string             `json:"trackingCompany"`
	ArriveDate      openapi_types.Date `json:"arriveDate"`
}

type CreatedResponse struct {
	ID kernel.ID `json:"id"`
}

type CountsResponse struct {
	Counts map[kernel.ID]int `json:"counts"`
}
