package domain

import "time"

// Delete status values for the dlt_sts flag. The numeric flag (rather than
// a bool) is preserved from the legacy schema.
const (
	DeleteStatusLive    = 0
	DeleteStatusDeleted = 1
)

// Actor identifies who performed a mutation, for audit stamping and for
// authorization scoping. ActorScheduler is used by the daily sweep.
type Actor struct {
	UserID string
	Role   string
	IP     string
}

// ActorScheduler stamps records mutated by the background sweep.
var ActorScheduler = Actor{UserID: "scheduler", IP: "127.0.0.1"}

// Audit carries the created/updated/deleted stamps shared by every record.
// It is embedded so the attributes land at the top level of the item.
type Audit struct {
	CreatedOn    time.Time  `json:"crtd_on" dynamodbav:"crtd_on"`
	CreatedBy    string     `json:"crtd_by" dynamodbav:"crtd_by"`
	CreatedIP    string     `json:"crtd_ip,omitempty" dynamodbav:"crtd_ip"`
	UpdatedOn    *time.Time `json:"updt_on,omitempty" dynamodbav:"updt_on,omitempty"`
	UpdatedBy    string     `json:"updt_by,omitempty" dynamodbav:"updt_by,omitempty"`
	UpdatedIP    string     `json:"updt_ip,omitempty" dynamodbav:"updt_ip,omitempty"`
	DeletedOn    *time.Time `json:"dlt_on,omitempty" dynamodbav:"dlt_on,omitempty"`
	DeletedBy    string     `json:"dlt_by,omitempty" dynamodbav:"dlt_by,omitempty"`
	DeletedIP    string     `json:"dlt_ip,omitempty" dynamodbav:"dlt_ip,omitempty"`
	DeleteStatus int        `json:"dlt_sts" dynamodbav:"dlt_sts"`
}

// IsDeleted reports whether the record is soft-deleted.
func (a Audit) IsDeleted() bool { return a.DeleteStatus == DeleteStatusDeleted }

// NewAudit returns creation stamps for a record created by actor at now.
func NewAudit(actor Actor, now time.Time) Audit {
	return Audit{
		CreatedOn:    now,
		CreatedBy:    actor.UserID,
		CreatedIP:    actor.IP,
		DeleteStatus: DeleteStatusLive,
	}
}

// StampUpdate sets the update audit fields in place.
func (a *Audit) StampUpdate(actor Actor, now time.Time) {
	a.UpdatedOn = &now
	a.UpdatedBy = actor.UserID
	a.UpdatedIP = actor.IP
}

// UpdateStamps returns the update audit fields as a partial-update map.
func UpdateStamps(actor Actor, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"updt_on": now,
		"updt_by": actor.UserID,
		"updt_ip": actor.IP,
	}
}

// DeleteStamps returns the soft-delete audit fields as a partial-update map.
func DeleteStamps(actor Actor, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"dlt_on":  now,
		"dlt_by":  actor.UserID,
		"dlt_ip":  actor.IP,
		"dlt_sts": DeleteStatusDeleted,
	}
}
