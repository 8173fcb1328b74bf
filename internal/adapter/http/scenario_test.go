package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vms-backend/internal/adapter/repository/gormrepo"
	domainAccount "vms-backend/internal/domain/account"
	"vms-backend/internal/testutil/blobmock"
	"vms-backend/internal/testutil/mailmock"
	"vms-backend/internal/testutil/testdb"
	"vms-backend/internal/usecase/account"
	"vms-backend/internal/usecase/analytics"
	"vms-backend/internal/usecase/auth"
	"vms-backend/internal/usecase/dashboard"
	"vms-backend/internal/usecase/evaluation"
	"vms-backend/internal/usecase/event"
	"vms-backend/internal/usecase/feedback"
	"vms-backend/internal/usecase/ingest"
	"vms-backend/internal/usecase/membership"
	"vms-backend/internal/usecase/report"
	"vms-backend/internal/usecase/requirement"
	"vms-backend/pkg/password"
)

type app struct {
	t      *testing.T
	e      *echo.Echo
	mailer *mailmock.Mailer
	blobs  *blobmock.Store
}

func newApp(t *testing.T) *app {
	t.Helper()
	password.Cost = bcrypt.MinCost

	gdb := testdb.Open(t)
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	tx := gormrepo.NewGormUoW(gdb)
	mailer := mailmock.New()
	blobs := blobmock.New()

	authUC := auth.NewUsecase(tx, time.Hour)
	accounts := account.NewUsecase(tx)
	events := event.NewUsecase(tx)
	jobs := ingest.NewUsecase(tx, time.UTC, nil)

	cfg := RouterConfig{Sessions: authUC}
	e := NewServer(cfg)
	members := membership.NewUsecase(tx, mailer)
	Register(e, Handlers{
		Health:      NewHandler(sqlDB),
		Auth:        NewAuthHandler(authUC, members),
		Accounts:    NewAccountHandler(accounts),
		Membership:  NewMembershipHandler(members),
		Events:      NewEventHandler(events),
		Requirement: NewRequirementHandler(requirement.NewUsecase(tx, blobs, mailer)),
		Evaluation:  NewEvaluationHandler(evaluation.NewUsecase(tx)),
		Reports:     NewReportHandler(report.NewUsecase(tx, blobs)),
		Feedback:    NewFeedbackHandler(feedback.NewUsecase(tx)),
		Dashboard:   NewDashboardHandler(dashboard.NewUsecase(tx, events, time.UTC)),
		Analytics:   NewAnalyticsHandler(analytics.NewUsecase(tx, jobs, nil, 0, nil)),
	}, cfg)

	for _, s := range []account.CreateInput{
		{Username: "officer", Password: "officer-pass", AccountType: domainAccount.TypeOfficer},
		{Username: "admin", Password: "admin-pass", AccountType: domainAccount.TypeAdmin},
	} {
		_, err := accounts.Create(context.Background(), s)
		require.NoError(t, err)
	}
	return &app{t: t, e: e, mailer: mailer, blobs: blobs}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return a.send(req, token)
}

func (a *app) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) login(username, pass string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": pass})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var res auth.LoginResult
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Session.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var application = map[string]any{
	"fullname":    "John Smith",
	"email":       "j@x.edu",
	"srcode":      "SR-1",
	"collegeDept": "CICS",
	"username":    "jsmith",
	"password":    "secret-pass",
}

func TestApprovalFlowAndDuplicateApplication(t *testing.T) {
	a := newApp(t)
	officer := a.login("officer", "officer-pass")

	rec := a.do(http.MethodPost, "/api/auth/register", "", application)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reg := decode[struct {
		Member struct {
			ID uint64 `json:"id"`
		} `json:"member"`
	}](t, rec)
	require.Equal(t, uint64(1), reg.Member.ID)

	rec = a.do(http.MethodPatch, "/api/membership/approve/1", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	// approving again must not create a second account
	rec = a.do(http.MethodPatch, "/api/membership/approve/1", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/accounts/?accountType=member", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[[]domainAccount.Account](t, rec)
	require.Len(t, list, 1)
	require.Equal(t, "jsmith", list[0].Username)
	require.NotNil(t, list[0].MembershipID)
	require.Equal(t, uint64(1), *list[0].MembershipID)

	rec = a.do(http.MethodPost, "/api/auth/register", "", application)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"username", "email", "srcode"}, decode[ErrorResponse](t, rec).FieldError)

	rec = a.do(http.MethodGet, "/api/auth/status?email=j@x.edu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, *decode[membership.StatusDTO](t, rec).Accepted)

	require.Equal(t, []string{"pending", "approved"}, a.mailer.Templates())
}

func TestAuthFailures(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "officer", "password": "wrong"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "invalid credentials", decode[ErrorResponse](t, rec).Message)

	rec = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decode[ErrorResponse](t, rec).FieldError, "username")

	require.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/accounts", "", nil).Code)
	require.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/accounts", "bogus", nil).Code)

	// a second login replaces the first session
	first := a.login("officer", "officer-pass")
	second := a.login("officer", "officer-pass")
	require.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/accounts", first, nil).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/accounts", second, nil).Code)

	rec = a.do(http.MethodGet, "/api/auth/session", second, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "officer", decode[auth.SessionDTO](t, rec).Username)

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/auth/logout", second, nil).Code)
	require.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/accounts", second, nil).Code)

	// dev maintenance is admin only
	officer := a.login("officer", "officer-pass")
	require.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/analytics/dev/clear", officer, nil).Code)
	admin := a.login("admin", "admin-pass")
	rec = a.do(http.MethodPost, "/api/analytics/dev/clear", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[AnalyticsResponse](t, rec).Success)
}

type eventBody struct {
	ID       uint64 `json:"id"`
	Status   string `json:"status"`
	ToPublic bool   `json:"toPublic"`
}

func signUp(t *testing.T, a *app, token string, eventID uint64, id string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"id": id, "fullname": "John Smith", "email": "j@x.edu", "srcode": "SR-1"} {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, ct := range map[string]string{"medCert": "application/pdf", "waiver": "image/png"} {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, field+".bin"))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4 test"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/requirements/%d", eventID), &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return a.send(req, token)
}

func TestEventLifecycleRequirementAndEvaluation(t *testing.T) {
	a := newApp(t)
	officer := a.login("officer", "officer-pass")

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/auth/register", "", application).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodPatch, "/api/membership/approve/1", officer, nil).Code)
	member := a.login("jsmith", "secret-pass")

	feb := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC).UnixMilli()
	rec := a.do(http.MethodPost, "/api/events/internal", officer, map[string]any{"title": "Coastal Cleanup", "durationStart": feb})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ev := decode[eventBody](t, rec)
	require.Equal(t, "editing", ev.Status)
	require.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/events/internal", member, map[string]any{"title": "x"}).Code)

	path := func(action string) string { return fmt.Sprintf("/api/events/internal/%s/%d", action, ev.ID) }
	rec = a.do(http.MethodPatch, path("submit"), officer, nil)
	require.Equal(t, "submitted", decode[eventBody](t, rec).Status)
	require.Equal(t, http.StatusBadRequest, a.do(http.MethodPatch, path("submit"), officer, nil).Code)

	// sign-ups need an accepted event
	require.Equal(t, http.StatusBadRequest, signUp(t, a, member, ev.ID, "REQ-A").Code)

	rec = a.do(http.MethodPatch, path("accept"), officer, nil)
	require.Equal(t, "accepted", decode[eventBody](t, rec).Status)
	rec = a.do(http.MethodPatch, path("to-public"), officer, nil)
	require.True(t, decode[eventBody](t, rec).ToPublic)

	rec = a.do(http.MethodGet, "/api/events/public", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	public := decode[[]eventBody](t, rec)
	require.Len(t, public, 1)
	require.Equal(t, ev.ID, public[0].ID)

	rec = signUp(t, a, member, ev.ID, "REQ-A")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, a.blobs.Files, 2)
	require.Equal(t, http.StatusBadRequest, signUp(t, a, member, ev.ID, "REQ-A").Code)
	require.Len(t, a.blobs.Files, 2)

	require.Equal(t, http.StatusForbidden, a.do(http.MethodPatch, "/api/requirements/accept/REQ-A", member, nil).Code)
	rec = a.do(http.MethodPatch, "/api/requirements/accept/REQ-A", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/evaluation/REQ-A", member, map[string]any{
		"criteria": map[string]any{"overall": 5},
		"q13":      "5",
		"q14":      "",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decode[evaluation.View](t, rec).Attended)

	rec = a.do(http.MethodGet, fmt.Sprintf("/api/events/internal/analyze/%d", ev.ID), officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, decode[event.Analysis](t, rec).Attended)

	rec = a.do(http.MethodPost, "/api/analytics/satisfaction/rebuild", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = a.do(http.MethodGet, "/api/analytics/satisfaction", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sat := decode[struct {
		Success bool                      `json:"success"`
		Data    []analytics.SemesterScore `json:"data"`
	}](t, rec)
	require.True(t, sat.Success)
	require.Len(t, sat.Data, 1)
	require.Equal(t, "2026-1", sat.Data[0].Semester)

	rec = a.do(http.MethodGet, "/api/analytics/event-success?semester=2026-7", officer, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, decode[AnalyticsResponse](t, rec).Success)

	rec = a.do(http.MethodPost, fmt.Sprintf("/api/feedback/internal/%d", ev.ID), officer, map[string]string{"message": "great turnout"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, fmt.Sprintf("/api/feedback/internal/%d", ev.ID), officer, map[string]string{"message": "again"}).Code)

	rec = a.do(http.MethodPost, fmt.Sprintf("/api/reports/internal/%d", ev.ID), officer, map[string]any{"narrative": "went well"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = a.do(http.MethodGet, fmt.Sprintf("/api/reports/analytics/internal/%d", ev.ID), officer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[report.Analytics](t, rec).Attended)

	rec = a.do(http.MethodGet, "/api/dashboard", officer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decode[dashboard.Summary](t, rec).Events.Public)

	rec = a.do(http.MethodDelete, fmt.Sprintf("/api/events/internal/%d", ev.ID), officer, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusNotFound, a.do(http.MethodGet, fmt.Sprintf("/api/events/internal/%d", ev.ID), officer, nil).Code)
}
