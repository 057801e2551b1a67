package models

// Analytics result records. All rate fields are percentages in [0, 100]
// and are exactly 0 when the underlying population is empty.

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type ApplicationStats struct {
	TotalApplications   int            `json:"total_applications"`
	StatusBreakdown     map[string]int `json:"status_breakdown"`
	ResponseRate        float64        `json:"response_rate"`
	InterviewRate       float64        `json:"interview_rate"`
	SuccessRate         float64        `json:"success_rate"`
	RejectionRate       float64        `json:"rejection_rate"`
	RecentApplications  int            `json:"recent_applications"`
	TopCompanies        []CompanyCount `json:"top_companies"`
	MonthlyTrend        []MonthCount   `json:"monthly_trend"`
	TotalResponses      int            `json:"total_responses"`
	InterviewsScheduled int            `json:"interviews_scheduled"`
}

type TypeSuccess struct {
	SuccessRate float64 `json:"success_rate"`
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
}

type InterviewAnalytics struct {
	Outcomes        map[string]int         `json:"interview_outcomes"`
	AverageDuration float64                `json:"average_duration"`
	TypeBreakdown   map[string]int         `json:"interview_types"`
	SuccessByType   map[string]TypeSuccess `json:"success_by_type"`
}

// StageAnalytics aggregates applications by interview_stage. The
// per-stage success_rate is the share of applications in the stage not
// yet rejected; the name is kept for dashboard compatibility even though
// the formula is a survival rate.
type StageAnalytics struct {
	StageDistribution map[string]int     `json:"stage_distribution"`
	AvgDaysInStage    map[string]float64 `json:"avg_days_in_stage"`
	StageSuccessRate  map[string]float64 `json:"success_rate"`
}

// EmptyApplicationStats returns a zero-valued but fully initialized stats
// record, the fail-soft result for a failed read.
func EmptyApplicationStats() *ApplicationStats {
	return &ApplicationStats{
		StatusBreakdown: map[string]int{},
		TopCompanies:    []CompanyCount{},
		MonthlyTrend:    []MonthCount{},
	}
}

func EmptyInterviewAnalytics() *InterviewAnalytics {
	return &InterviewAnalytics{
		Outcomes:      map[string]int{},
		TypeBreakdown: map[string]int{},
		SuccessByType: map[string]TypeSuccess{},
	}
}

func EmptyStageAnalytics() *StageAnalytics {
	return &StageAnalytics{
		StageDistribution: map[string]int{},
		AvgDaysInStage:    map[string]float64{},
		StageSuccessRate:  map[string]float64{},
	}
}
