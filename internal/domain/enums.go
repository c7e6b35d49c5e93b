package domain

// Role is the job function of a user; it selects the permission set.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAttorney  Role = "attorney"
	RoleParalegal Role = "paralegal"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAttorney, RoleParalegal:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleAttorney:
		return "Attorney"
	case RoleParalegal:
		return "Paralegal"
	}
	return string(r)
}

// CaseStatus is a state of the case lifecycle.
type CaseStatus string

const (
	CaseStatusNew           CaseStatus = "new"
	CaseStatusUnderReview   CaseStatus = "under_review"
	CaseStatusInProgress    CaseStatus = "in_progress"
	CaseStatusPendingClient CaseStatus = "pending_client"
	CaseStatusResolved      CaseStatus = "resolved"
	CaseStatusClosed        CaseStatus = "closed"
)

// CaseStatuses lists every status in lifecycle order.
func CaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusNew,
		CaseStatusUnderReview,
		CaseStatusInProgress,
		CaseStatusPendingClient,
		CaseStatusResolved,
		CaseStatusClosed,
	}
}

func (s CaseStatus) String() string { return string(s) }

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusNew, CaseStatusUnderReview, CaseStatusInProgress,
		CaseStatusPendingClient, CaseStatusResolved, CaseStatusClosed:
		return true
	}
	return false
}

func (s CaseStatus) Label() string {
	switch s {
	case CaseStatusNew:
		return "New"
	case CaseStatusUnderReview:
		return "Under Review"
	case CaseStatusInProgress:
		return "In Progress"
	case CaseStatusPendingClient:
		return "Pending Client"
	case CaseStatusResolved:
		return "Resolved"
	case CaseStatusClosed:
		return "Closed"
	}
	return string(s)
}

// CaseType is the practice area of a case.
type CaseType string

const (
	CaseTypePersonalInjury         CaseType = "personal_injury"
	CaseTypeAutoAccident           CaseType = "auto_accident"
	CaseTypeImmigrationVisa        CaseType = "immigration_visa"
	CaseTypeImmigrationCitizenship CaseType = "immigration_citizenship"
	CaseTypeFamilyDivorce          CaseType = "family_divorce"
	CaseTypeFamilyCustody          CaseType = "family_custody"
)

func (t CaseType) String() string { return string(t) }

func (t CaseType) IsValid() bool {
	switch t {
	case CaseTypePersonalInjury, CaseTypeAutoAccident, CaseTypeImmigrationVisa,
		CaseTypeImmigrationCitizenship, CaseTypeFamilyDivorce, CaseTypeFamilyCustody:
		return true
	}
	return false
}

func (t CaseType) Category() string {
	switch t {
	case CaseTypePersonalInjury, CaseTypeAutoAccident:
		return "Civil"
	case CaseTypeImmigrationVisa, CaseTypeImmigrationCitizenship:
		return "Immigration"
	case CaseTypeFamilyDivorce, CaseTypeFamilyCustody:
		return "Family"
	}
	return ""
}

// TaskTemplates returns the default checklist for a new case of this type.
func (t CaseType) TaskTemplates() []string {
	switch t {
	case CaseTypePersonalInjury:
		return []string{
			"Initial client consultation",
			"Gather medical records",
			"File insurance claim",
			"Negotiate settlement",
			"Prepare litigation if needed",
		}
	case CaseTypeAutoAccident:
		return []string{
			"Obtain police report",
			"Document vehicle damage",
			"Gather medical records",
			"Contact insurance companies",
			"Calculate damages",
		}
	case CaseTypeImmigrationVisa:
		return []string{
			"Review eligibility requirements",
			"Gather supporting documents",
			"Complete visa application forms",
			"Schedule biometrics appointment",
			"Prepare for interview",
		}
	case CaseTypeImmigrationCitizenship:
		return []string{
			"Verify eligibility for naturalization",
			"Complete N-400 application",
			"Gather supporting documents",
			"Schedule biometrics",
			"Prepare for citizenship test",
		}
	case CaseTypeFamilyDivorce:
		return []string{
			"Initial consultation",
			"Gather financial documents",
			"File divorce petition",
			"Serve papers to spouse",
			"Negotiate settlement terms",
		}
	case CaseTypeFamilyCustody:
		return []string{
			"Initial consultation",
			"Document custody concerns",
			"File custody motion",
			"Prepare parenting plan",
			"Schedule mediation",
		}
	}
	return nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeBusiness   ClientType = "business"
)

func (t ClientType) String() string { return string(t) }

func (t ClientType) IsValid() bool {
	switch t {
	case ClientTypeIndividual, ClientTypeBusiness:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsClosed reports whether the task no longer counts towards deadlines.
func (s TaskStatus) IsClosed() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

type NotificationType string

const (
	NotificationDeadline   NotificationType = "deadline"
	NotificationAssignment NotificationType = "assignment"
	NotificationUpdate     NotificationType = "update"
	NotificationMention    NotificationType = "mention"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationDeadline, NotificationAssignment, NotificationUpdate, NotificationMention:
		return true
	}
	return false
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)
