package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract statuses
const (
	ContractStatusDraft     = "draft"
	ContractStatusSubmitted = "submitted"
	ContractStatusApproved  = "approved"
	ContractStatusRejected  = "rejected"
	ContractStatusArchived  = "archived"
	ContractStatusCancelled = "cancelled"
)

// Valid status transitions: from -> []to
var ValidContractTransitions = map[string][]string{
	ContractStatusDraft:     {ContractStatusSubmitted, ContractStatusCancelled},
	ContractStatusSubmitted: {ContractStatusApproved, ContractStatusRejected, ContractStatusCancelled},
	ContractStatusApproved:  {ContractStatusArchived, ContractStatusCancelled},
	ContractStatusRejected:  {},
	ContractStatusArchived:  {ContractStatusApproved},
	ContractStatusCancelled: {},
}

func IsValidContractTransition(from, to string) bool {
	allowed, ok := ValidContractTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Contract phases. The phase is an explicit field set at data entry,
// never inferred from the designation text.
const (
	ContractPhasePreparation  = "preparation"
	ContractPhaseConsultation = "consultation"
	ContractPhaseValidation   = "validation"
	ContractPhaseApproval     = "approval"
	ContractPhaseExecution    = "execution"
	ContractPhaseCloseout     = "closeout"
)

var contractPhases = map[string]bool{
	ContractPhasePreparation:  true,
	ContractPhaseConsultation: true,
	ContractPhaseValidation:   true,
	ContractPhaseApproval:     true,
	ContractPhaseExecution:    true,
	ContractPhaseCloseout:     true,
}

func IsValidContractPhase(phase string) bool {
	return contractPhases[phase]
}

type Contract struct {
	ID         uuid.UUID   `json:"id"`
	Number     string      `json:"number"`
	Year       int         `json:"year"`
	Subject    Designation `json:"subject"`
	Contractor string      `json:"contractor"`
	AmountDA   string      `json:"amount_da"`
	Phase      string      `json:"phase"`
	Status     string      `json:"status"`
	SignedAt   *time.Time  `json:"signed_at,omitempty"`
	ExpiresAt  *time.Time  `json:"expires_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
