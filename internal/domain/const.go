package domain

const (
	OwnerIDCtxKey = "jt-ownerId"
)

const (
	OwnerIDHeader = "x-owner-id"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusDenied   ApplicationStatus = "Denied"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDenied:
		return true
	}
	return false
}

type InterviewStage string

const (
	StageApplied     InterviewStage = "Applied"
	StagePhoneScreen InterviewStage = "Phone Screen"
	StageInterview   InterviewStage = "Interview"
	StageFinalRound  InterviewStage = "Final Round"
	StageOffer       InterviewStage = "Offer"
)

func (s InterviewStage) Valid() bool {
	switch s {
	case StageApplied, StagePhoneScreen, StageInterview, StageFinalRound, StageOffer:
		return true
	}
	return false
}

type ChatFeel string

const (
	FeelGreat ChatFeel = "Great"
	FeelGood  ChatFeel = "Good"
	FeelOkay  ChatFeel = "Okay"
	FeelCold  ChatFeel = "Cold"
)

func (f ChatFeel) Valid() bool {
	switch f {
	case FeelGreat, FeelGood, FeelOkay, FeelCold:
		return true
	}
	return false
}

type RelationshipStatus string

const (
	RelationshipLead      RelationshipStatus = "Lead"
	RelationshipConnected RelationshipStatus = "Connected"
	RelationshipClose     RelationshipStatus = "Close"
	RelationshipMentor    RelationshipStatus = "Mentor"
)

func (r RelationshipStatus) Valid() bool {
	switch r {
	case RelationshipLead, RelationshipConnected, RelationshipClose, RelationshipMentor:
		return true
	}
	return false
}

// EntityKind selects which collection a search runs over.
type EntityKind string

const (
	KindApplication EntityKind = "applications"
	KindContact     EntityKind = "contacts"
)

const (
	MinGradYear = 1950
	MaxGradYear = 2100
)
