package models

import (
	"encoding/json"
	"time"
)

// Audit actions — closed set, chosen by the caller when the entry is built.
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionRead    = "read"
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"
	AuditActionSubmit  = "submit"
	AuditActionCancel  = "cancel"
	AuditActionArchive = "archive"
	AuditActionRestore = "restore"
)

var auditActions = map[string]bool{
	AuditActionCreate:  true,
	AuditActionUpdate:  true,
	AuditActionDelete:  true,
	AuditActionRead:    true,
	AuditActionApprove: true,
	AuditActionReject:  true,
	AuditActionSubmit:  true,
	AuditActionCancel:  true,
	AuditActionArchive: true,
	AuditActionRestore: true,
}

func IsValidAuditAction(action string) bool {
	return auditActions[action]
}

// Audit outcome statuses
const (
	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
	AuditStatusPartial = "partial"
)

// AuditRecord is one immutable row of the audit trail. Rows are only ever
// inserted; the subsystem never updates or deletes them. The entity
// reference is opaque — nothing checks that the referenced row exists.
type AuditRecord struct {
	ID              int64     `json:"id"`
	EntityName      string    `json:"entity_name"`
	EntityID        string    `json:"entity_id"`
	Action          string    `json:"action"`
	Username        *string   `json:"username,omitempty"`
	IPAddress       *string   `json:"ip_address,omitempty"`
	UserAgent       *string   `json:"user_agent,omitempty"`
	SessionID       *string   `json:"session_id,omitempty"`
	OldValues       *string   `json:"old_values,omitempty"`
	NewValues       *string   `json:"new_values,omitempty"`
	Parameters      *string   `json:"parameters,omitempty"`
	Metadata        *string   `json:"metadata,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Status          string    `json:"status"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
	DurationMS      *int64    `json:"duration_ms,omitempty"`
	Module          *string   `json:"module,omitempty"`
	BusinessProcess *string   `json:"business_process,omitempty"`
	ParentAuditID   *int64    `json:"parent_audit_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// DecodePayload parses a stored payload blob back into a generic map.
// The blob's internal shape belongs to whoever recorded it, so an absent
// or malformed blob decodes to an empty map instead of an error.
func DecodePayload(blob *string) map[string]any {
	if blob == nil || *blob == "" {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(*blob), &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// Actor identifies who performed an audited operation. Zero fields are
// simply not recorded (system-initiated actions have no username).
type Actor struct {
	Username  string
	IPAddress string
	UserAgent string
	SessionID string
}

// ActivitySummary aggregates one actor's records over a lookback window.
type ActivitySummary struct {
	Username string           `json:"username"`
	Days     int              `json:"days"`
	Since    time.Time        `json:"since"`
	Total    int64            `json:"total"`
	ByAction map[string]int64 `json:"by_action"`
}
