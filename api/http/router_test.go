package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/artem13815/jobportal/api/http"
	"github.com/artem13815/jobportal/api/http/handlers"
	"github.com/artem13815/jobportal/api/http/presenter"
	"github.com/artem13815/jobportal/pkg/admin"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/dashboard"
	"github.com/artem13815/jobportal/pkg/filestore"
	"github.com/artem13815/jobportal/pkg/health"
	"github.com/artem13815/jobportal/pkg/llm"
	"github.com/artem13815/jobportal/pkg/mailer"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/posting"
	"github.com/artem13815/jobportal/pkg/profile"
	"github.com/artem13815/jobportal/pkg/ratelimit"
	"github.com/artem13815/jobportal/pkg/repository/memory"
	"github.com/artem13815/jobportal/pkg/resume"
	"github.com/artem13815/jobportal/pkg/security/jwt"
)

const (
	adminEmail    = "admin@portal.test"
	adminPassword = "admin-secret"
)

type slowModel struct{}

func (slowModel) Ask(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowModel) Name() string { return "slow" }

func newApp(t *testing.T, loginLimit int) *fiber.App {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	files, err := filestore.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	tokens := jwt.NewGenerator("test-secret", "jobportal", time.Hour)
	authUC := auth.NewAuthService(store.Users(), store.Resets(), tokens, mailer.NewLog(log, "/reset?token="), time.Hour, log)
	require.NoError(t, authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword))
	assistant := llm.NewAssistant(slowModel{}, 50*time.Millisecond, log)

	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler})
	httpapi.Register(app, httpapi.Handlers{
		Health:      handlers.NewHealthHandler(health.NewService()),
		Auth:        handlers.NewAuthHandler(authUC),
		Profile:     handlers.NewProfileHandler(profile.NewService(store.Profiles())),
		Posting:     handlers.NewPostingHandler(posting.NewService(store.Postings(), store.Users(), store.Profiles())),
		Application: handlers.NewApplicationHandler(application.NewService(store.Applications(), store.Postings(), store.Resumes())),
		Resume: handlers.NewResumeHandler(
			resume.NewService(store.Resumes(), files, store.Profiles(), assistant, 1<<20, log), 1<<20),
		Student: handlers.NewStudentHandler(
			dashboard.NewService(store.Applications(), store.Notifications(), store.Resumes(), store.Profiles()),
			notification.NewService(store.Notifications())),
		Admin:        handlers.NewAdminHandler(admin.NewService(store.Admin(), store.Users(), store.Resumes(), files, log)),
		AuthRequired: jwt.NewAuthMiddleware(tokens),
		Throttle:     ratelimit.Middleware(ratelimit.Config{Max: loginLimit, Window: time.Minute}),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, app, req, token)
}

func send(t *testing.T, app *fiber.App, req *http.Request, token string) (*http.Response, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type authBody struct {
	User    auth.User `json:"user"`
	Token   string    `json:"token"`
	Message string    `json:"message"`
}

func login(t *testing.T, app *fiber.App, email, password, role string) string {
	t.Helper()
	resp, raw := do(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password, "role": role})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	return decode[authBody](t, raw).Token
}

func register(t *testing.T, app *fiber.App, email, role string) authBody {
	t.Helper()
	resp, raw := do(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": email, "password": "secret1", "role": role})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[authBody](t, raw)
}

// activeRecruiter registers a recruiter, has the admin approve it and logs in.
func activeRecruiter(t *testing.T, app *fiber.App, adminToken, email string) string {
	t.Helper()
	reg := register(t, app, email, "recruiter")
	require.Empty(t, reg.Token)
	resp, raw := do(t, app, http.MethodPatch, "/api/v1/admin/approvals/"+reg.User.ID.String()+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	return login(t, app, email, "secret1", "recruiter")
}

func TestRegisterLoginConflictAndRole(t *testing.T) {
	app := newApp(t, 100)

	reg := register(t, app, "a@x.com", "student")
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, auth.RoleStudent, reg.User.Role)
	assert.NotEmpty(t, login(t, app, "A@x.com", "secret1", "student"))

	resp, _ := do(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "a@x.com", "password": "secret1", "role": "student"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw := do(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@x.com", "password": "secret1", "role": "recruiter"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email, password or role", decode[presenter.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := decode[presenter.ErrorResponse](t, raw).Fields
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "role")
}

func TestForgotPasswordIsGeneric(t *testing.T) {
	app := newApp(t, 100)
	register(t, app, "known@x.com", "student")

	_, known := do(t, app, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "known@x.com"})
	_, unknown := do(t, app, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "nobody@x.com"})
	assert.JSONEq(t, string(known), string(unknown))
}

func TestAuthGuards(t *testing.T) {
	app := newApp(t, 100)
	student := register(t, app, "s@x.com", "student").Token

	resp, raw := do(t, app, http.MethodGet, "/api/v1/student/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "missing Authorization header", decode[presenter.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, http.MethodGet, "/api/v1/student/dashboard", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid or expired token", decode[presenter.ErrorResponse](t, raw).Message)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/admin/dashboard", student, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/student/dashboard", student, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPendingRecruiterCannotLogInUntilApproved(t *testing.T) {
	app := newApp(t, 100)
	adminToken := login(t, app, adminEmail, adminPassword, "admin")

	reg := register(t, app, "r@x.com", "recruiter")
	assert.Empty(t, reg.Token)
	assert.Equal(t, auth.StatusPendingApproval, reg.User.Status)

	resp, _ := do(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "r@x.com", "password": "secret1", "role": "recruiter"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := do(t, app, http.MethodGet, "/api/v1/admin/approvals", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[struct {
		TotalCount int `json:"totalCount"`
	}](t, raw).TotalCount)

	path := "/api/v1/admin/approvals/" + reg.User.ID.String() + "/approve"
	resp, _ = do(t, app, http.MethodPatch, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPatch, path, adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	assert.NotEmpty(t, login(t, app, "r@x.com", "secret1", "recruiter"))
}

func TestApplicationStatusOwnership(t *testing.T) {
	app := newApp(t, 100)
	adminToken := login(t, app, adminEmail, adminPassword, "admin")
	owner := activeRecruiter(t, app, adminToken, "owner@corp.com")
	other := activeRecruiter(t, app, adminToken, "other@corp.com")
	student := register(t, app, "a@x.com", "student").Token

	resp, raw := do(t, app, http.MethodPost, "/api/v1/jobs/post", owner, map[string]any{
		"title": "Backend intern", "description": "Go services", "skills": []string{"Golang"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	job := decode[posting.Posting](t, raw)

	resp, raw = do(t, app, http.MethodPost, "/api/v1/applications", student, map[string]string{"jobId": job.ID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	a := decode[application.Application](t, raw)
	assert.Equal(t, application.StatusNew, a.Status)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/applications", student, map[string]string{"jobId": job.ID.String()})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	statusPath := "/api/v1/applications/" + a.ID.String() + "/status"
	resp, _ = do(t, app, http.MethodPatch, statusPath, other, map[string]string{"status": "Shortlisted"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = do(t, app, http.MethodPatch, statusPath, owner, map[string]string{"status": "Shortlisted"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, application.StatusShortlisted, decode[application.Application](t, raw).Status)

	resp, _ = do(t, app, http.MethodPatch, statusPath, owner, map[string]string{"status": "Hired"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPatch, statusPath, owner, map[string]string{"status": "Offer Accepted"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPatch, statusPath, owner, map[string]string{"status": "Maybe"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = do(t, app, http.MethodGet, "/api/v1/student/notifications?unread=true", student, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inbox := decode[struct {
		Items  []notification.Notification `json:"items"`
		Unread int                         `json:"unread"`
	}](t, raw)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, 1, inbox.Unread)
	assert.Equal(t, "/student/applications/"+a.ID.String(), inbox.Items[0].Link)

	resp, _ = do(t, app, http.MethodPatch, "/api/v1/student/notifications/"+inbox.Items[0].ID.String()+"/read", student, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, raw = do(t, app, http.MethodGet, "/api/v1/student/notifications/unread-count", student, nil)
	assert.JSONEq(t, `{"unread":0}`, string(raw))

	resp, raw = do(t, app, http.MethodPatch, "/api/v1/student/applications/"+a.ID.String()+"/withdraw", student, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, application.StatusWithdrawn, decode[application.Application](t, raw).Status)
}

type inboxBody struct {
	Items      []notification.Notification `json:"items"`
	TotalCount int                         `json:"totalCount"`
	Unread     int                         `json:"unread"`
}

func TestNotificationInboxIsPerStudent(t *testing.T) {
	app := newApp(t, 100)
	adminToken := login(t, app, adminEmail, adminPassword, "admin")
	owner := activeRecruiter(t, app, adminToken, "owner@corp.com")
	alice := register(t, app, "alice@x.com", "student").Token
	bob := register(t, app, "bob@x.com", "student").Token

	resp, raw := do(t, app, http.MethodPost, "/api/v1/internships/post", owner, map[string]any{"title": "Data intern", "description": "SQL"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	job := decode[posting.Posting](t, raw)
	for _, student := range []string{alice, bob} {
		resp, raw = do(t, app, http.MethodPost, "/api/v1/applications", student, map[string]string{"jobId": job.ID.String()})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
		id := decode[application.Application](t, raw).ID
		resp, raw = do(t, app, http.MethodPatch, "/api/v1/applications/"+id.String()+"/status", owner, map[string]string{"status": "Shortlisted"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	}

	inbox := func(token string) inboxBody {
		t.Helper()
		resp, raw := do(t, app, http.MethodGet, "/api/v1/student/notifications", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		return decode[inboxBody](t, raw)
	}
	a, b := inbox(alice), inbox(bob)
	require.NotEmpty(t, a.Items)
	require.NotEmpty(t, b.Items)
	assert.Equal(t, len(a.Items), a.Unread)
	target := a.Items[0].ID.String()

	resp, _ = do(t, app, http.MethodPatch, "/api/v1/student/notifications/"+target+"/read", bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, "/api/v1/student/notifications/"+target, bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, a.Unread, inbox(alice).Unread)

	resp, raw = do(t, app, http.MethodPatch, "/api/v1/student/notifications/read-all", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, fmt.Sprintf(`{"updated":%d}`, a.Unread), string(raw))
	_, raw = do(t, app, http.MethodGet, "/api/v1/student/notifications/unread-count", alice, nil)
	assert.JSONEq(t, `{"unread":0}`, string(raw))
	assert.Equal(t, b.Unread, inbox(bob).Unread)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/student/notifications/"+target, alice, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, a.TotalCount-1, inbox(alice).TotalCount)
	resp, _ = do(t, app, http.MethodDelete, "/api/v1/student/notifications/"+target, alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostingBrowse(t *testing.T) {
	app := newApp(t, 100)
	adminToken := login(t, app, adminEmail, adminPassword, "admin")
	rec := activeRecruiter(t, app, adminToken, "r@corp.com")
	student := register(t, app, "s@x.com", "student").Token

	resp, _ := do(t, app, http.MethodPost, "/api/v1/jobs/post", student, map[string]any{"title": "x", "description": "y"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	for i := range 3 {
		resp, raw := do(t, app, http.MethodPost, "/api/v1/internships/post", rec, map[string]any{
			"title": fmt.Sprintf("Intern %d", i), "description": "d", "location": "Berlin", "deadline": "2999-01-01",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}
	resp, raw := do(t, app, http.MethodPost, "/api/v1/internships/post", rec, map[string]any{"title": "x", "description": "y", "deadline": "soon"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	resp, raw = do(t, app, http.MethodGet, "/api/v1/internships?location=berlin&limit=2", student, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[struct {
		Items      []posting.Posting `json:"items"`
		TotalCount int               `json:"totalCount"`
		TotalPages int               `json:"totalPages"`
	}](t, raw)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/jobs/"+page.Items[0].ID.String(), student, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = do(t, app, http.MethodPost, "/api/v1/jobs/post", rec, map[string]any{"title": "Go dev", "description": "d"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	type total struct {
		TotalCount int `json:"totalCount"`
	}
	resp, raw = do(t, app, http.MethodGet, "/api/v1/internships/mine", rec, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 3, decode[total](t, raw).TotalCount)
	resp, raw = do(t, app, http.MethodGet, "/api/v1/jobs/mine", rec, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 1, decode[total](t, raw).TotalCount)
	resp, _ = do(t, app, http.MethodGet, "/api/v1/internships/mine", student, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func upload(t *testing.T, app *fiber.App, token, filename string) resume.Resume {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("resume body of " + filename))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, raw := send(t, app, req, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[resume.Resume](t, raw)
}

func TestResumeDefaultFlips(t *testing.T) {
	app := newApp(t, 100)
	student := register(t, app, "s@x.com", "student").Token

	a := upload(t, app, student, "a.pdf")
	assert.True(t, a.IsDefault)
	b := upload(t, app, student, "b.docx")
	assert.False(t, b.IsDefault)

	for range 2 {
		resp, raw := do(t, app, http.MethodPatch, "/api/v1/resumes/"+b.ID.String()+"/default", student, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		list := decode[[]resume.Resume](t, raw)
		require.Len(t, list, 2)
		defaults := 0
		for _, r := range list {
			if r.IsDefault {
				defaults++
				assert.Equal(t, b.ID, r.ID)
			}
		}
		assert.Equal(t, 1, defaults)
	}

	other := register(t, app, "o@x.com", "student").Token
	resp, _ := do(t, app, http.MethodPatch, "/api/v1/resumes/"+b.ID.String()+"/default", other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/resumes/"+b.ID.String(), student, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, raw := do(t, app, http.MethodGet, "/api/v1/resumes", student, nil)
	list := decode[[]resume.Resume](t, raw)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault)
}

func TestResumeUploadRejectsFormat(t *testing.T) {
	app := newApp(t, 100)
	student := register(t, app, "s@x.com", "student").Token

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "cv.exe")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("MZ"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, _ := send(t, app, req, student)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAIBuildTimeoutIsRetryable(t *testing.T) {
	app := newApp(t, 100)
	student := register(t, app, "s@x.com", "student").Token

	resp, _ := do(t, app, http.MethodPost, "/api/v1/resumes/ai-build", student, map[string]string{"targetRole": "Go developer"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := do(t, app, http.MethodPost, "/api/v1/profile/student", student, map[string]any{"fullName": "Ada", "skills": []string{"Go"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = do(t, app, http.MethodPost, "/api/v1/resumes/ai-build", student, map[string]string{"targetRole": "Go developer"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get("Retry-After"))
	assert.True(t, decode[presenter.ErrorResponse](t, raw).Retryable)
}

func TestLoginIsRateLimited(t *testing.T) {
	app := newApp(t, 2)
	body := map[string]string{"email": "x@x.com", "password": "wrong1", "role": "student"}
	for range 2 {
		resp, _ := do(t, app, http.MethodPost, "/api/v1/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := do(t, app, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// other routes keep their own budget
	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "x@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminUsersAndReports(t *testing.T) {
	app := newApp(t, 100)
	adminToken := login(t, app, adminEmail, adminPassword, "admin")
	s := register(t, app, "s@x.com", "student")

	resp, raw := do(t, app, http.MethodGet, "/api/v1/admin/users?role=student", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[struct {
		TotalCount int `json:"totalCount"`
	}](t, raw).TotalCount)

	resp, _ = do(t, app, http.MethodPatch, "/api/v1/admin/users/"+s.User.ID.String()+"/status", adminToken, map[string]string{"status": "Inactive"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "s@x.com", "password": "secret1", "role": "student"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = do(t, app, http.MethodGet, "/api/v1/admin/reports?type=users&format=csv", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, string(raw), "ID,Name,Email,Role,Status,Created At")
	assert.Contains(t, string(raw), "s@x.com")

	resp, _ = do(t, app, http.MethodGet, "/api/v1/admin/reports?type=bogus", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/admin/users/"+s.User.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, "/api/v1/admin/users/"+s.User.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
