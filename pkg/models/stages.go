package models

// Stages is the known pipeline stage vocabulary, in pipeline order. It is
// a static list served to clients, not derived from data. Status and
// interview_stage remain free strings in storage; nothing below is
// enforced as a closed enum or a transition table.
var Stages = []string{
	"applied",
	"application_review",
	"online_assessment",
	"phone_screening",
	"first_interview",
	"technical_interview",
	"second_stage",
	"final_interview",
	"reference_check",
	"offer_pending",
	"offer",
	"rejected",
}

// StageOrder maps a stage label to its sort position on interview
// sessions. Labels missing from the map get order 0.
var StageOrder = map[string]int{
	"online_assessment":   1,
	"phone_screening":     2,
	"first_interview":     3,
	"technical_interview": 4,
	"second_stage":        5,
	"final_interview":     6,
}

// OrderForStage looks up the session sort position for a stage label.
func OrderForStage(stage string) int {
	return StageOrder[stage]
}

// Status values pushed onto applications as side effects of logging
// responses. Any response type not listed leaves the status untouched.
const (
	StatusApplied            = "applied"
	StatusInterviewScheduled = "interview_scheduled"
	StatusRejected           = "rejected"
	StatusOffer              = "offer"
)

// ResponseStatusPush returns the status a response type forces onto the
// parent application, or "" when the type carries no status push. The
// push is unconditional: a later rejection regresses even an application
// already marked "offer".
func ResponseStatusPush(responseType string) string {
	switch responseType {
	case "interview_invitation", "phone_screen":
		return StatusInterviewScheduled
	case "rejection":
		return StatusRejected
	default:
		return ""
	}
}
