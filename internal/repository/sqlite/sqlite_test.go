package sqlite_test

import (
	"context"
	"strings"
	"testing"
	"time"

	dbfiles "github.com/mstern/applytrack/db"
	dbpkg "github.com/mstern/applytrack/internal/db"
	sqlite "github.com/mstern/applytrack/internal/repository/sqlite"
	"github.com/mstern/applytrack/pkg/models"
)

// setupRepo opens a fresh in-memory database and applies the real
// migrations. Each test gets its own shared-cache name so parallel tests
// do not see each other's rows.
func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	d, err := dbpkg.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := dbpkg.Migrate(ctx, d, dbfiles.Migrations, dbfiles.SeedFiles); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func TestApplicationCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	// nil application should error
	if _, err := repo.CreateApplication(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil application")
	}

	// Non-existing ID should return nil, nil
	got, err := repo.GetApplication(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error when getting non-existing ID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil when getting non-existing ID got: %#v", got)
	}

	a := &models.Application{Company: "Initech", Position: "Backend Engineer"}
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err = repo.GetApplication(ctx, id)
	if err != nil {
		t.Fatalf("GetApplication error: %v", err)
	}
	if got == nil || got.Company != "Initech" {
		t.Fatalf("GetApplication wrong result: %#v", got)
	}
	// defaults applied on create
	if got.Status != "applied" {
		t.Fatalf("expected default status applied got %q", got.Status)
	}
	if got.ApplicationDate != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("expected today's application date got %q", got.ApplicationDate)
	}
	if got.InterviewStage != nil {
		t.Fatalf("expected nil interview stage got %q", *got.InterviewStage)
	}

	// update status
	ok, err := repo.UpdateApplicationStatus(ctx, id, "ghosted")
	if err != nil {
		t.Fatalf("UpdateApplicationStatus error: %v", err)
	}
	if !ok {
		t.Fatalf("expected update to match a row")
	}
	got, _ = repo.GetApplication(ctx, id)
	if got.Status != "ghosted" {
		t.Fatalf("expected status ghosted got %q", got.Status)
	}

	// missing row reports false, nil
	ok, err = repo.UpdateApplicationStatus(ctx, 9999, "applied")
	if err != nil {
		t.Fatalf("UpdateApplicationStatus missing row error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for missing row")
	}
}

func TestListApplications(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	apps := []*models.Application{
		{Company: "Acme", Position: "SRE", ApplicationDate: "2026-06-01"},
		{Company: "Globex", Position: "SWE", ApplicationDate: "2026-07-15", Status: "rejected"},
		{Company: "Initech", Position: "SWE", ApplicationDate: "2026-08-01"},
	}
	for _, a := range apps {
		if _, err := repo.CreateApplication(ctx, a); err != nil {
			t.Fatalf("CreateApplication error: %v", err)
		}
	}

	all, err := repo.ListApplications(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListApplications error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 applications got %d", len(all))
	}
	// newest application date first
	if all[0].Company != "Initech" || all[2].Company != "Acme" {
		t.Fatalf("unexpected order: %q, %q, %q", all[0].Company, all[1].Company, all[2].Company)
	}

	rejected, err := repo.ListApplications(ctx, "rejected", 0)
	if err != nil {
		t.Fatalf("ListApplications filtered error: %v", err)
	}
	if len(rejected) != 1 || rejected[0].Company != "Globex" {
		t.Fatalf("unexpected filtered result: %#v", rejected)
	}

	limited, err := repo.ListApplications(ctx, "", 2)
	if err != nil {
		t.Fatalf("ListApplications limited error: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 applications got %d", len(limited))
	}
}

func TestResponseStatusPush(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.CreateApplication(ctx, &models.Application{Company: "Acme", Position: "SWE"})
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	// interview invitation pushes interview_scheduled
	if _, err := repo.CreateResponse(ctx, &models.Response{ApplicationID: id, ResponseType: "interview_invitation"}); err != nil {
		t.Fatalf("CreateResponse error: %v", err)
	}
	got, _ := repo.GetApplication(ctx, id)
	if got.Status != "interview_scheduled" {
		t.Fatalf("expected interview_scheduled got %q", got.Status)
	}

	// follow_up carries no push
	if _, err := repo.CreateResponse(ctx, &models.Response{ApplicationID: id, ResponseType: "follow_up"}); err != nil {
		t.Fatalf("CreateResponse error: %v", err)
	}
	got, _ = repo.GetApplication(ctx, id)
	if got.Status != "interview_scheduled" {
		t.Fatalf("follow_up must not change status, got %q", got.Status)
	}

	// the push is unconditional: a rejection regresses even an offer
	if ok, err := repo.UpdateApplicationStatus(ctx, id, "offer"); err != nil || !ok {
		t.Fatalf("UpdateApplicationStatus error: ok=%v err=%v", ok, err)
	}
	if _, err := repo.CreateResponse(ctx, &models.Response{ApplicationID: id, ResponseType: "rejection"}); err != nil {
		t.Fatalf("CreateResponse error: %v", err)
	}
	got, _ = repo.GetApplication(ctx, id)
	if got.Status != "rejected" {
		t.Fatalf("expected rejection to overwrite offer, got %q", got.Status)
	}

	// phone_screen also maps to interview_scheduled
	if _, err := repo.CreateResponse(ctx, &models.Response{ApplicationID: id, ResponseType: "phone_screen"}); err != nil {
		t.Fatalf("CreateResponse error: %v", err)
	}
	got, _ = repo.GetApplication(ctx, id)
	if got.Status != "interview_scheduled" {
		t.Fatalf("expected interview_scheduled got %q", got.Status)
	}

	// a dangling application id keeps the response and touches nothing
	danglingID, err := repo.CreateResponse(ctx, &models.Response{ApplicationID: 4242, ResponseType: "rejection"})
	if err != nil {
		t.Fatalf("CreateResponse dangling error: %v", err)
	}
	if danglingID == 0 {
		t.Fatalf("expected dangling response to be stored")
	}
}

func TestOutcomeOverwritesStatus(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.CreateApplication(ctx, &models.Application{Company: "Globex", Position: "SWE"})
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	salary := 120000.0
	oid, err := repo.CreateOutcome(ctx, &models.Outcome{ApplicationID: id, FinalOutcome: "offer", SalaryOffered: &salary})
	if err != nil {
		t.Fatalf("CreateOutcome error: %v", err)
	}
	if oid == 0 {
		t.Fatalf("expected outcome id > 0")
	}

	got, _ := repo.GetApplication(ctx, id)
	if got.Status != "offer" {
		t.Fatalf("expected final outcome to become status, got %q", got.Status)
	}

	// a later outcome overwrites again, no terminal-state guard
	if _, err := repo.CreateOutcome(ctx, &models.Outcome{ApplicationID: id, FinalOutcome: "withdrawn"}); err != nil {
		t.Fatalf("CreateOutcome error: %v", err)
	}
	got, _ = repo.GetApplication(ctx, id)
	if got.Status != "withdrawn" {
		t.Fatalf("expected withdrawn got %q", got.Status)
	}

	detail, err := repo.GetApplicationDetail(ctx, id)
	if err != nil {
		t.Fatalf("GetApplicationDetail error: %v", err)
	}
	if len(detail.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes got %d", len(detail.Outcomes))
	}
	if detail.Outcomes[0].SalaryOffered == nil || *detail.Outcomes[0].SalaryOffered != salary {
		t.Fatalf("unexpected salary: %#v", detail.Outcomes[0].SalaryOffered)
	}
}

func TestAdvanceStage(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.CreateApplication(ctx, &models.Application{Company: "Initech", Position: "SWE"})
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	// missing application reports false, nil
	ok, err := repo.AdvanceStage(ctx, 9999, "technical_interview", nil)
	if err != nil {
		t.Fatalf("AdvanceStage missing error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for missing application")
	}

	// advance with details creates a session tagged with the stage
	details := &models.StageDetails{InterviewType: "technical", ScheduledDate: "2026-09-01", Platform: "zoom"}
	ok, err = repo.AdvanceStage(ctx, id, "technical_interview", details)
	if err != nil {
		t.Fatalf("AdvanceStage error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true")
	}

	got, _ := repo.GetApplication(ctx, id)
	if got.Status != "technical_interview" {
		t.Fatalf("expected status technical_interview got %q", got.Status)
	}
	if got.InterviewStage == nil || *got.InterviewStage != "technical_interview" {
		t.Fatalf("unexpected interview stage: %#v", got.InterviewStage)
	}
	if got.CurrentStageDate == nil || *got.CurrentStageDate != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("unexpected current stage date: %#v", got.CurrentStageDate)
	}

	detail, err := repo.GetApplicationDetail(ctx, id)
	if err != nil {
		t.Fatalf("GetApplicationDetail error: %v", err)
	}
	if len(detail.Interviews) != 1 {
		t.Fatalf("expected 1 session got %d", len(detail.Interviews))
	}
	session := detail.Interviews[0]
	if session.InterviewStage != "technical_interview" || session.StageOrder != 4 {
		t.Fatalf("unexpected session: stage=%q order=%d", session.InterviewStage, session.StageOrder)
	}
	if session.Status != "scheduled" || session.InterviewType != "technical" {
		t.Fatalf("unexpected session: status=%q type=%q", session.Status, session.InterviewType)
	}

	// advance without details creates no session
	ok, err = repo.AdvanceStage(ctx, id, "final_interview", nil)
	if err != nil || !ok {
		t.Fatalf("AdvanceStage error: ok=%v err=%v", ok, err)
	}
	detail, _ = repo.GetApplicationDetail(ctx, id)
	if len(detail.Interviews) != 1 {
		t.Fatalf("expected still 1 session got %d", len(detail.Interviews))
	}

	// an unknown stage label gets session order 0
	ok, err = repo.AdvanceStage(ctx, id, "culture_fit", &models.StageDetails{InterviewType: "behavioral"})
	if err != nil || !ok {
		t.Fatalf("AdvanceStage error: ok=%v err=%v", ok, err)
	}
	detail, _ = repo.GetApplicationDetail(ctx, id)
	if detail.Interviews[0].StageOrder != 0 || detail.Interviews[0].InterviewStage != "culture_fit" {
		t.Fatalf("unexpected first session after unknown stage: %#v", detail.Interviews[0])
	}
}

func TestInterviewStageOrderDefault(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, _ := repo.CreateApplication(ctx, &models.Application{Company: "Acme", Position: "SWE"})

	sid, err := repo.CreateInterview(ctx, &models.InterviewSession{ApplicationID: id, InterviewType: "technical", InterviewStage: "phone_screening"})
	if err != nil {
		t.Fatalf("CreateInterview error: %v", err)
	}
	if sid == 0 {
		t.Fatalf("expected session id > 0")
	}

	detail, _ := repo.GetApplicationDetail(ctx, id)
	if len(detail.Interviews) != 1 {
		t.Fatalf("expected 1 session got %d", len(detail.Interviews))
	}
	if detail.Interviews[0].StageOrder != 2 {
		t.Fatalf("expected stage order 2 got %d", detail.Interviews[0].StageOrder)
	}
	if detail.Interviews[0].Status != "scheduled" {
		t.Fatalf("expected default status scheduled got %q", detail.Interviews[0].Status)
	}
}

func TestApplicationStats(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	today := time.Now().UTC().Format("2006-01-02")
	ids := make([]int64, 0, 4)
	for _, a := range []*models.Application{
		{Company: "Acme", Position: "SWE", ApplicationDate: today},
		{Company: "Acme", Position: "SRE", ApplicationDate: today},
		{Company: "Globex", Position: "SWE", ApplicationDate: today},
		{Company: "Initech", Position: "SWE", ApplicationDate: today},
	} {
		id, err := repo.CreateApplication(ctx, a)
		if err != nil {
			t.Fatalf("CreateApplication error: %v", err)
		}
		ids = append(ids, id)
	}

	// two applications responded, one of them twice
	for _, r := range []*models.Response{
		{ApplicationID: ids[0], ResponseType: "interview_invitation"},
		{ApplicationID: ids[0], ResponseType: "follow_up"},
		{ApplicationID: ids[1], ResponseType: "rejection"},
	} {
		if _, err := repo.CreateResponse(ctx, r); err != nil {
			t.Fatalf("CreateResponse error: %v", err)
		}
	}

	// one application reached an interview
	if _, err := repo.CreateInterview(ctx, &models.InterviewSession{ApplicationID: ids[0], InterviewType: "technical"}); err != nil {
		t.Fatalf("CreateInterview error: %v", err)
	}

	// one offer
	if _, err := repo.CreateOutcome(ctx, &models.Outcome{ApplicationID: ids[2], FinalOutcome: "offer"}); err != nil {
		t.Fatalf("CreateOutcome error: %v", err)
	}

	stats, err := repo.ApplicationStats(ctx)
	if err != nil {
		t.Fatalf("ApplicationStats error: %v", err)
	}

	if stats.TotalApplications != 4 {
		t.Fatalf("expected 4 applications got %d", stats.TotalApplications)
	}
	if stats.TotalResponses != 3 {
		t.Fatalf("expected 3 responses got %d", stats.TotalResponses)
	}
	// response rate counts distinct responded applications: 2 of 4
	if stats.ResponseRate != 50.0 {
		t.Fatalf("expected response rate 50.0 got %v", stats.ResponseRate)
	}
	if stats.InterviewsScheduled != 1 || stats.InterviewRate != 25.0 {
		t.Fatalf("unexpected interview stats: scheduled=%d rate=%v", stats.InterviewsScheduled, stats.InterviewRate)
	}
	if stats.SuccessRate != 25.0 {
		t.Fatalf("expected success rate 25.0 got %v", stats.SuccessRate)
	}
	// ids[1] got the rejection push
	if stats.RejectionRate != 25.0 {
		t.Fatalf("expected rejection rate 25.0 got %v", stats.RejectionRate)
	}
	if stats.RecentApplications != 4 {
		t.Fatalf("expected 4 recent applications got %d", stats.RecentApplications)
	}

	if stats.StatusBreakdown["offer"] != 1 || stats.StatusBreakdown["rejected"] != 1 {
		t.Fatalf("unexpected status breakdown: %#v", stats.StatusBreakdown)
	}

	if len(stats.TopCompanies) != 3 {
		t.Fatalf("expected 3 companies got %d", len(stats.TopCompanies))
	}
	if stats.TopCompanies[0].Company != "Acme" || stats.TopCompanies[0].Count != 2 {
		t.Fatalf("unexpected top company: %#v", stats.TopCompanies[0])
	}

	if len(stats.MonthlyTrend) != 1 || stats.MonthlyTrend[0].Count != 4 {
		t.Fatalf("unexpected monthly trend: %#v", stats.MonthlyTrend)
	}
	if stats.MonthlyTrend[0].Month != time.Now().UTC().Format("2006-01") {
		t.Fatalf("unexpected trend month: %q", stats.MonthlyTrend[0].Month)
	}
}

func TestApplicationStatsEmpty(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	stats, err := repo.ApplicationStats(context.Background())
	if err != nil {
		t.Fatalf("ApplicationStats error: %v", err)
	}
	if stats.TotalApplications != 0 || stats.ResponseRate != 0 || stats.SuccessRate != 0 {
		t.Fatalf("expected zero stats got %#v", stats)
	}
	if stats.StatusBreakdown == nil || stats.TopCompanies == nil || stats.MonthlyTrend == nil {
		t.Fatalf("expected initialized collections: %#v", stats)
	}
}

func TestInterviewAnalytics(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, _ := repo.CreateApplication(ctx, &models.Application{Company: "Acme", Position: "SWE"})

	sessions := []*models.InterviewSession{
		{ApplicationID: id, InterviewType: "technical", Outcome: "passed", Duration: 60},
		{ApplicationID: id, InterviewType: "technical", Outcome: "failed", Duration: 30},
		{ApplicationID: id, InterviewType: "behavioral", Outcome: "passed", Duration: 0},
		{ApplicationID: id, InterviewType: "phone_screen"}, // pending, no outcome
	}
	for _, s := range sessions {
		if _, err := repo.CreateInterview(ctx, s); err != nil {
			t.Fatalf("CreateInterview error: %v", err)
		}
	}

	analytics, err := repo.InterviewAnalytics(ctx)
	if err != nil {
		t.Fatalf("InterviewAnalytics error: %v", err)
	}

	if analytics.Outcomes["passed"] != 2 || analytics.Outcomes["failed"] != 1 {
		t.Fatalf("unexpected outcomes: %#v", analytics.Outcomes)
	}
	if _, present := analytics.Outcomes[""]; present {
		t.Fatalf("empty outcome must not be counted: %#v", analytics.Outcomes)
	}

	// zero durations are excluded from the average: (60+30)/2
	if analytics.AverageDuration != 45.0 {
		t.Fatalf("expected average duration 45.0 got %v", analytics.AverageDuration)
	}

	if analytics.TypeBreakdown["technical"] != 2 || analytics.TypeBreakdown["behavioral"] != 1 || analytics.TypeBreakdown["phone_screen"] != 1 {
		t.Fatalf("unexpected type breakdown: %#v", analytics.TypeBreakdown)
	}

	tech := analytics.SuccessByType["technical"]
	if tech.Total != 2 || tech.Passed != 1 || tech.SuccessRate != 50.0 {
		t.Fatalf("unexpected technical success: %#v", tech)
	}
	// pending sessions stay out of the pass-rate denominator
	if _, present := analytics.SuccessByType["phone_screen"]; present {
		t.Fatalf("pending-only type must not appear in success by type")
	}
}

func TestStageAnalytics(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	ids := make([]int64, 0, 3)
	for _, a := range []*models.Application{
		{Company: "Acme", Position: "SWE"},
		{Company: "Globex", Position: "SWE"},
		{Company: "Initech", Position: "SWE"},
	} {
		id, err := repo.CreateApplication(ctx, a)
		if err != nil {
			t.Fatalf("CreateApplication error: %v", err)
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		if ok, err := repo.AdvanceStage(ctx, id, "technical_interview", nil); err != nil || !ok {
			t.Fatalf("AdvanceStage error: ok=%v err=%v", ok, err)
		}
	}
	// one of them is rejected afterwards; the stage label survives
	if _, err := repo.CreateResponse(ctx, &models.Response{ApplicationID: ids[2], ResponseType: "rejection"}); err != nil {
		t.Fatalf("CreateResponse error: %v", err)
	}

	analytics, err := repo.StageAnalytics(ctx)
	if err != nil {
		t.Fatalf("StageAnalytics error: %v", err)
	}

	if analytics.StageDistribution["technical_interview"] != 3 {
		t.Fatalf("unexpected distribution: %#v", analytics.StageDistribution)
	}
	// 2 of 3 not rejected
	if analytics.StageSuccessRate["technical_interview"] != 66.7 {
		t.Fatalf("expected survival rate 66.7 got %v", analytics.StageSuccessRate["technical_interview"])
	}
	if days, present := analytics.AvgDaysInStage["technical_interview"]; !present || days < 0 {
		t.Fatalf("unexpected avg days: %v present=%v", days, present)
	}

	// applications without a stage are invisible here
	if _, err := repo.CreateApplication(ctx, &models.Application{Company: "Umbrella", Position: "SWE"}); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	again, err := repo.StageAnalytics(ctx)
	if err != nil {
		t.Fatalf("StageAnalytics error: %v", err)
	}
	total := 0
	for _, n := range again.StageDistribution {
		total += n
	}
	if total != 3 {
		t.Fatalf("expected 3 staged applications got %d", total)
	}
}

func TestQuestionRepo(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, _ := repo.CreateApplication(ctx, &models.Application{Company: "Acme", Position: "SWE"})

	if _, err := repo.CreateQuestion(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil question")
	}

	q := &models.GeneratedQuestion{ApplicationID: id, InterviewType: "technical", Question: "Describe a race condition you debugged.", Source: "template"}
	qid, err := repo.CreateQuestion(ctx, q)
	if err != nil {
		t.Fatalf("CreateQuestion error: %v", err)
	}
	if qid == 0 {
		t.Fatalf("expected question id > 0")
	}

	qs, err := repo.ListQuestionsByApplication(ctx, id)
	if err != nil {
		t.Fatalf("ListQuestionsByApplication error: %v", err)
	}
	if len(qs) != 1 || qs[0].Question != q.Question {
		t.Fatalf("unexpected questions: %#v", qs)
	}

	none, err := repo.ListQuestionsByApplication(ctx, 9999)
	if err != nil {
		t.Fatalf("ListQuestionsByApplication error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no questions got %d", len(none))
	}
}

func TestSeededSchemaAndTemplates(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	s, err := repo.GetSchema(ctx, "v1")
	if err != nil {
		t.Fatalf("GetSchema error: %v", err)
	}
	if s == nil || s.SchemaJSON == "" {
		t.Fatalf("expected seeded v1 schema got %#v", s)
	}

	missing, err := repo.GetSchema(ctx, "v99")
	if err != nil {
		t.Fatalf("GetSchema missing error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing schema version")
	}

	list, err := repo.ListSchemas(ctx)
	if err != nil {
		t.Fatalf("ListSchemas error: %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected at least one schema")
	}

	tpl, err := repo.GetTemplates(ctx, "technical")
	if err != nil {
		t.Fatalf("GetTemplates error: %v", err)
	}
	if tpl == nil || tpl.TemplatesJSON == "" {
		t.Fatalf("expected seeded technical templates got %#v", tpl)
	}

	noTpl, err := repo.GetTemplates(ctx, "underwater_basket_weaving")
	if err != nil {
		t.Fatalf("GetTemplates missing error: %v", err)
	}
	if noTpl != nil {
		t.Fatalf("expected nil for unknown interview type")
	}
}

func TestUserRepo(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	missing, err := repo.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail missing error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing user")
	}

	u := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	id, err := repo.CreateUser(ctx, u)
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected user id > 0")
	}

	got, err := repo.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if got == nil || got.ID != id || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %#v", got)
	}

	// duplicate email violates the unique index
	if _, err := repo.CreateUser(ctx, &models.User{Name: "Alice2", Email: "alice@example.com"}); err == nil {
		t.Fatalf("expected unique constraint error")
	}
}
