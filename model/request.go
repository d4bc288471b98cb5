// model/request.go
package model

import "time"

// RequestType identifies the kind of approvable request travelling through
// the workflow engine.
type RequestType string

const (
	RequestTypeLeave      RequestType = "leave"
	RequestTypeOD         RequestType = "od"
	RequestTypePermission RequestType = "permission"
	RequestTypeArrears    RequestType = "arrears"
)

// Valid reports whether t is one of the supported request types.
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeLeave, RequestTypeOD, RequestTypePermission, RequestTypeArrears:
		return true
	}
	return false
}

// CompetingTypes returns the request types whose live records can occupy the
// same calendar interval as t. Leave and OD compete with each other; a
// permission additionally competes with both since it carves hours out of a
// working day. Arrears are monetary and never conflict on dates.
func (t RequestType) CompetingTypes() []RequestType {
	switch t {
	case RequestTypeLeave:
		return []RequestType{RequestTypeOD}
	case RequestTypeOD:
		return []RequestType{RequestTypeLeave}
	case RequestTypePermission:
		return []RequestType{RequestTypeLeave, RequestTypeOD}
	default:
		return nil
	}
}

// Status is the top-level request status, a deterministic projection of the
// approval chain.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"

	StatusHODApproved     Status = "hod_approved"
	StatusHODRejected     Status = "hod_rejected"
	StatusManagerApproved Status = "manager_approved"
	StatusManagerRejected Status = "manager_rejected"
	StatusHRApproved      Status = "hr_approved"
	StatusHRRejected      Status = "hr_rejected"
)

// ApprovedStatusForRole derives the intermediate status label for an
// approval by the given role, e.g. hod -> hod_approved.
func ApprovedStatusForRole(r Role) Status {
	return Status(string(r) + "_approved")
}

// RejectedStatusForRole derives the terminal rejection label for the given
// role, e.g. hod -> hod_rejected.
func RejectedStatusForRole(r Role) Status {
	return Status(string(r) + "_rejected")
}

// IsTerminal reports whether s ends the workflow. Intermediate approvals
// (hod_approved, hr_approved, ...) are not terminal; every rejection is.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled,
		StatusHODRejected, StatusManagerRejected, StatusHRRejected:
		return true
	}
	return false
}

// LiveStatuses is the set of statuses that make a request occupy its
// interval. With approvedOnly the set shrinks to fully approved records;
// otherwise it includes pending and intermediate-approved ones as well.
func LiveStatuses(approvedOnly bool) []Status {
	if approvedOnly {
		return []Status{StatusApproved}
	}
	return []Status{
		StatusPending,
		StatusHODApproved,
		StatusManagerApproved,
		StatusHRApproved,
		StatusApproved,
	}
}

// TerminalStatuses lists every status that ends a workflow.
func TerminalStatuses() []Status {
	return []Status{
		StatusApproved, StatusRejected, StatusCancelled,
		StatusHODRejected, StatusManagerRejected, StatusHRRejected,
	}
}

// StepStatus is the per-step state inside an approval chain.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
	StepSkipped  StepStatus = "skipped"
)

// ApprovalStep is one desk in the approval chain.
type ApprovalStep struct {
	Order          int        `json:"order"` // 1-based
	Role           Role       `json:"role"`
	Label          string     `json:"label"`
	Status         StepStatus `json:"status"`
	ApprovedStatus Status     `json:"approved_status"` // top-level projection on approval
	RejectedStatus Status     `json:"rejected_status"` // top-level projection on rejection
	ActionBy       string     `json:"action_by,omitempty"`
	ActionAt       *time.Time `json:"action_at,omitempty"`
	Comments       string     `json:"comments,omitempty"`
	IsCurrent      bool       `json:"is_current"`
	Countersign    bool       `json:"countersign,omitempty"` // re-queued by a forward; must sign before completion
}

// WorkflowAction names an entry in the workflow history.
type WorkflowAction string

const (
	ActionSubmitted     WorkflowAction = "submitted"
	ActionApproved      WorkflowAction = "approved"
	ActionRejected      WorkflowAction = "rejected"
	ActionForwarded     WorkflowAction = "forwarded"
	ActionRevoked       WorkflowAction = "revoked"
	ActionCancelled     WorkflowAction = "cancelled"
	ActionStatusChanged WorkflowAction = "status_changed"
)

// WorkflowEvent is one append-only history entry.
type WorkflowEvent struct {
	Step      string         `json:"step"`
	Action    WorkflowAction `json:"action"`
	ActorID   string         `json:"actor_id"`
	ActorRole Role           `json:"actor_role"`
	Comments  string         `json:"comments,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Workflow is the approval state embedded in every request. The current
// step is never stored twice: it is derived from the chain.
type Workflow struct {
	ApprovalChain      []ApprovalStep  `json:"approval_chain"`
	FinalAuthorityRole Role            `json:"final_authority_role"`
	ForwardPolicy      ForwardPolicy   `json:"forward_policy,omitempty"`
	IsCompleted        bool            `json:"is_completed"`
	History            []WorkflowEvent `json:"history"`
}

// CurrentStepIndex returns the index of the step with IsCurrent set, or -1
// when the workflow is completed or still in draft.
func (w *Workflow) CurrentStepIndex() int {
	for i := range w.ApprovalChain {
		if w.ApprovalChain[i].IsCurrent {
			return i
		}
	}
	return -1
}

// CurrentStep returns the current step, or nil.
func (w *Workflow) CurrentStep() *ApprovalStep {
	if i := w.CurrentStepIndex(); i >= 0 {
		return &w.ApprovalChain[i]
	}
	return nil
}

// CurrentStepOrder returns the order of the current step, or 0 when none.
// The zero value doubles as the optimistic-concurrency marker for a
// completed workflow.
func (w *Workflow) CurrentStepOrder() int {
	if s := w.CurrentStep(); s != nil {
		return s.Order
	}
	return 0
}

// Clone returns a deep copy. Transitions always mutate a copy and write it
// back atomically instead of patching nested fields in place.
func (w *Workflow) Clone() Workflow {
	out := *w
	out.ApprovalChain = make([]ApprovalStep, len(w.ApprovalChain))
	copy(out.ApprovalChain, w.ApprovalChain)
	out.History = make([]WorkflowEvent, len(w.History))
	copy(out.History, w.History)
	return out
}

// LastApproval scans the chain in reverse step order for the most recent
// approved step with a recorded timestamp. Returns nil when no approval has
// happened yet.
func (w *Workflow) LastApproval() *ApprovalStep {
	for i := len(w.ApprovalChain) - 1; i >= 0; i-- {
		s := &w.ApprovalChain[i]
		if s.Status == StepApproved && s.ActionAt != nil {
			return s
		}
	}
	return nil
}

// Interval is a closed day-granularity date range.
type Interval struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Overlaps reports whether two closed intervals intersect:
// [a,b] and [c,d] intersect iff a <= d and c <= b.
func (i Interval) Overlaps(o Interval) bool {
	return !i.From.After(o.To) && !o.From.After(i.To)
}

// SingleDay reports whether the interval covers exactly one day.
func (i Interval) SingleDay() bool {
	return i.From.Equal(i.To)
}

// HalfDayType values for the half-day refinement.
const (
	FirstHalf  = "first_half"
	SecondHalf = "second_half"
)

// Request is an approvable request: Leave, OD, Permission or Arrears.
type Request struct {
	ID   string      `json:"id"`
	Type RequestType `json:"type"`

	EmployeeID  string `json:"employee_id"` // subject employee
	EmployeeNo  string `json:"employee_no"`
	RequestedBy string `json:"requested_by"` // acting user, may differ from subject

	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
	// Time window within the day, permission requests only.
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	NumberOfDays float64 `json:"number_of_days"`
	IsHalfDay    bool    `json:"is_half_day"`
	HalfDayType  string  `json:"half_day_type,omitempty"`

	Purpose       string `json:"purpose"`
	ContactNumber string `json:"contact_number,omitempty"`
	Remarks       string `json:"remarks,omitempty"`

	// Snapshotted from the employee directory at creation time.
	DivisionID   string `json:"division_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`

	Status   Status   `json:"status"`
	IsActive bool     `json:"is_active"`
	Workflow Workflow `json:"workflow"`

	// Outpass artifact, issued on terminal approval of a permission.
	OutpassCode   string     `json:"outpass_code,omitempty"`
	OutpassURL    string     `json:"outpass_url,omitempty"`
	OutpassExpiry *time.Time `json:"outpass_expiry,omitempty"`

	AppliedAt time.Time `json:"applied_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Interval returns the request's occupied date range.
func (r *Request) Interval() Interval {
	return Interval{From: r.FromDate, To: r.ToDate}
}

// ScopeTarget projects the request into the fields jurisdiction checks
// operate on.
func (r *Request) ScopeTarget() ScopeTarget {
	return ScopeTarget{
		EmployeeID:  r.EmployeeID,
		EmployeeNo:  r.EmployeeNo,
		Division:    r.DivisionID,
		Department:  r.DepartmentID,
		RequestedBy: r.RequestedBy,
	}
}

// RequestSearchCriteria narrows listing queries. Zero fields are ignored.
type RequestSearchCriteria struct {
	Type       RequestType `json:"type,omitempty"`
	Status     Status      `json:"status,omitempty"`
	EmployeeID string      `json:"employee_id,omitempty"`
	EmployeeNo string      `json:"employee_no,omitempty"`
	FromDate   *time.Time  `json:"from_date,omitempty"`
	ToDate     *time.Time  `json:"to_date,omitempty"`
	Limit      int         `json:"limit,omitempty"`
	Offset     int         `json:"offset,omitempty"`
}
