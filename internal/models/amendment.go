package models

import (
	"time"

	"github.com/google/uuid"
)

// Amendment statuses
const (
	AmendmentStatusSubmitted = "submitted"
	AmendmentStatusApproved  = "approved"
	AmendmentStatusRejected  = "rejected"
)

// Amendment is an avenant on a contract: a numbered change to its amount
// and/or duration. Numbers are unique within the contract.
type Amendment struct {
	ID            uuid.UUID   `json:"id"`
	ContractID    uuid.UUID   `json:"contract_id"`
	Number        int         `json:"number"`
	Object        Designation `json:"object"`
	AmountDelta   string      `json:"amount_delta"`
	ExtensionDays int         `json:"extension_days"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
