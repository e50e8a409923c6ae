package dto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DesignationFields is embedded by every request that carries trilingual
// naming.
type DesignationFields struct {
	Ar string `json:"ar"`
	En string `json:"en"`
	Fr string `json:"fr"`
}

type CreateContractRequest struct {
	Number     string            `json:"number"`
	Year       int               `json:"year"`
	Subject    DesignationFields `json:"subject"`
	Contractor string            `json:"contractor"`
	AmountDA   string            `json:"amount_da"`
	Phase      string            `json:"phase"`
	SignedAt   *time.Time        `json:"signed_at,omitempty"`
	ExpiresAt  *time.Time        `json:"expires_at,omitempty"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type CreateAmendmentRequest struct {
	ContractID    string            `json:"contract_id"`
	Object        DesignationFields `json:"object"`
	AmountDelta   string            `json:"amount_delta"`
	ExtensionDays int               `json:"extension_days"`
}

type CreateConsultationRequest struct {
	Reference string            `json:"reference"`
	Object    DesignationFields `json:"object"`
	Mode      string            `json:"mode"`
	Deadline  *time.Time        `json:"deadline,omitempty"`
}

type AwardConsultationRequest struct {
	AwardedTo string `json:"awarded_to"`
}

type RegisterMailRequest struct {
	Reference     string            `json:"reference"`
	Direction     string            `json:"direction"`
	Year          int               `json:"year"`
	Correspondent string            `json:"correspondent"`
	Subject       DesignationFields `json:"subject"`
	ReceivedAt    *time.Time        `json:"received_at,omitempty"`
}

type ArchiveMailRequest struct {
	LocationID string `json:"location_id"`
}

type CreateArchiveLocationRequest struct {
	Room    string            `json:"room"`
	Cabinet string            `json:"cabinet"`
	Shelf   string            `json:"shelf"`
	Box     string            `json:"box"`
	Label   DesignationFields `json:"label"`
}

type UpdateArchiveLocationRequest struct {
	Label DesignationFields `json:"label"`
}
