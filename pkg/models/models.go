package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Dates are stored as SQLite text dates (YYYY-MM-DD) and row timestamps as
// SQLite datetime text so the analytics SQL can lean on strftime/julianday.
// Nullable columns map to pointer fields.

type Application struct {
	ID               int64   `json:"id" db:"id"`
	Company          string  `json:"company" db:"company"`
	Position         string  `json:"position" db:"position"`
	ApplicationDate  string  `json:"application_date" db:"application_date"`
	Status           string  `json:"status" db:"status"`
	InterviewStage   *string `json:"interview_stage,omitempty" db:"interview_stage"`
	CurrentStageDate *string `json:"current_stage_date,omitempty" db:"current_stage_date"`
	Platform         string  `json:"platform,omitempty" db:"platform"`
	JobURL           string  `json:"job_url,omitempty" db:"job_url"`
	SalaryRange      string  `json:"salary_range,omitempty" db:"salary_range"`
	Location         string  `json:"location,omitempty" db:"location"`
	Notes            string  `json:"notes,omitempty" db:"notes"`
	CreatedAt        string  `json:"created_at" db:"created_at"`
	UpdatedAt        string  `json:"updated_at" db:"updated_at"`
}

type Response struct {
	ID            int64  `json:"id" db:"id"`
	ApplicationID int64  `json:"application_id" db:"application_id"`
	ResponseType  string `json:"response_type" db:"response_type"`
	ResponseDate  string `json:"response_date" db:"response_date"`
	Message       string `json:"message,omitempty" db:"message"`
	NextStep      string `json:"next_step,omitempty" db:"next_step"`
	CreatedAt     string `json:"created_at" db:"created_at"`
}

type InterviewSession struct {
	ID                int64  `json:"id" db:"id"`
	ApplicationID     int64  `json:"application_id" db:"application_id"`
	InterviewType     string `json:"interview_type" db:"interview_type"`
	InterviewStage    string `json:"interview_stage,omitempty" db:"interview_stage"`
	StageOrder        int    `json:"stage_order" db:"stage_order"`
	ScheduledDate     string `json:"scheduled_date,omitempty" db:"scheduled_date"`
	ScheduledTime     string `json:"scheduled_time,omitempty" db:"scheduled_time"`
	Platform          string `json:"platform,omitempty" db:"platform"`
	InterviewerName   string `json:"interviewer_name,omitempty" db:"interviewer_name"`
	Status            string `json:"status" db:"status"`
	Feedback          string `json:"feedback,omitempty" db:"feedback"`
	Outcome           string `json:"outcome,omitempty" db:"outcome"`
	Duration          int    `json:"duration" db:"duration"`
	PreparationTime   int    `json:"preparation_time" db:"preparation_time"`
	AssessmentDetails string `json:"assessment_details,omitempty" db:"assessment_details"`
	CreatedAt         string `json:"created_at" db:"created_at"`
}

type Outcome struct {
	ID              int64    `json:"id" db:"id"`
	ApplicationID   int64    `json:"application_id" db:"application_id"`
	FinalOutcome    string   `json:"final_outcome" db:"final_outcome"`
	OutcomeDate     string   `json:"outcome_date" db:"outcome_date"`
	OfferDetails    string   `json:"offer_details,omitempty" db:"offer_details"`
	SalaryOffered   *float64 `json:"salary_offered,omitempty" db:"salary_offered"`
	RejectionReason string   `json:"rejection_reason,omitempty" db:"rejection_reason"`
	Feedback        string   `json:"feedback,omitempty" db:"feedback"`
	CreatedAt       string   `json:"created_at" db:"created_at"`
}

// ApplicationDetail is an application together with its full stage history.
type ApplicationDetail struct {
	Application
	Responses  []Response         `json:"responses"`
	Interviews []InterviewSession `json:"interviews"`
	Outcomes   []Outcome          `json:"outcomes"`
}

// StageDetails carries the optional interview session created as a side
// effect of advancing an application to a new stage.
type StageDetails struct {
	InterviewType     string `json:"interview_type,omitempty"`
	ScheduledDate     string `json:"scheduled_date,omitempty"`
	ScheduledTime     string `json:"scheduled_time,omitempty"`
	Platform          string `json:"platform,omitempty"`
	InterviewerName   string `json:"interviewer_name,omitempty"`
	AssessmentDetails string `json:"assessment_details,omitempty"`
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Updated      int64  `json:"updated" db:"updated"`
}

// GeneratedQuestion is one interview question produced by the question
// engine (LLM or template bank) for an application.
type GeneratedQuestion struct {
	ID            int64  `json:"id" db:"id"`
	ApplicationID int64  `json:"application_id" db:"application_id"`
	InterviewType string `json:"interview_type" db:"interview_type"`
	Question      string `json:"question" db:"question"`
	Category      string `json:"category,omitempty" db:"category"`
	Difficulty    string `json:"difficulty,omitempty" db:"difficulty"`
	Source        string `json:"source" db:"source"`
	Created       int64  `json:"created" db:"created"`
}

// Schema is a versioned JSON Schema used to validate question engine output.
type Schema struct {
	ID          int64  `json:"id" db:"id"`
	Version     string `json:"version" db:"version"`
	Description string `json:"description,omitempty" db:"description"`
	SchemaJSON  string `json:"schema_json" db:"schema_json"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}

// QuestionTemplate is a stored bank of template questions for one
// interview type, kept as a JSON array of strings.
type QuestionTemplate struct {
	ID            int64  `json:"id" db:"id"`
	InterviewType string `json:"interview_type" db:"interview_type"`
	Version       string `json:"version" db:"version"`
	TemplatesJSON string `json:"templates_json" db:"templates_json"`
	Created       int64  `json:"created" db:"created"`
	Updated       int64  `json:"updated" db:"updated"`
}
