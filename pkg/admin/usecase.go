package admin

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/filestore"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/resume"
)

const (
	defaultWindow = 30 * 24 * time.Hour
	topRecruiters = 5
	dateLayout    = "2006-01-02"
)

type UseCase interface {
	Dashboard(ctx context.Context) (Overview, error)
	Analytics(ctx context.Context, w Window) (Analytics, error)
	ListUsers(ctx context.Context, f UserFilter, page pagination.Page) (pagination.Result[auth.User], error)
	UpdateUserStatus(ctx context.Context, actorID, id uuid.UUID, status string) (auth.User, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
	PendingRecruiters(ctx context.Context, page pagination.Page) (pagination.Result[auth.User], error)
	ApproveRecruiter(ctx context.Context, id uuid.UUID) (auth.User, error)
	RejectRecruiter(ctx context.Context, id uuid.UUID) (auth.User, error)
	Report(ctx context.Context, kind string, w Window) (Report, error)
}

type service struct {
	repo    Repository
	users   auth.UserRepository
	resumes resume.Repository
	files   filestore.Store
	now     func() time.Time
	log     *slog.Logger
}

func NewService(repo Repository, users auth.UserRepository, resumes resume.Repository, files filestore.Store, log *slog.Logger) UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &service{
		repo:    repo,
		users:   users,
		resumes: resumes,
		files:   files,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log,
	}
}

func (s *service) Dashboard(ctx context.Context) (Overview, error) {
	return s.repo.Overview(ctx, s.now().Add(-7*24*time.Hour))
}

func (s *service) Analytics(ctx context.Context, w Window) (Analytics, error) {
	return s.repo.Analytics(ctx, w, topRecruiters)
}

func (s *service) ListUsers(ctx context.Context, f UserFilter, page pagination.Page) (pagination.Result[auth.User], error) {
	f.Search = strings.TrimSpace(f.Search)
	items, total, err := s.repo.ListUsers(ctx, f, page)
	if err != nil {
		return pagination.Result[auth.User]{}, err
	}
	return pagination.NewResult(items, total, page), nil
}

func (s *service) UpdateUserStatus(ctx context.Context, actorID, id uuid.UUID, status string) (auth.User, error) {
	st, ok := auth.ParseStatus(status)
	if !ok {
		return auth.User{}, apperr.Validation("invalid status", map[string]string{"status": "expected Active, Inactive, Pending Approval or Rejected"})
	}
	if actorID == id {
		return auth.User{}, ErrSelfModify
	}
	return s.repo.SetUserStatus(ctx, id, st, "")
}

func (s *service) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfModify
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	// collect file keys before the rows disappear
	owned, err := s.resumes.ListByOwner(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	for _, r := range owned {
		if err := s.files.Delete(ctx, r.StorageKey); err != nil {
			s.log.Warn("resume file cleanup failed", slog.String("user_id", id.String()), slog.String("key", r.StorageKey), slog.String("error", err.Error()))
		}
	}
	s.log.Info("user deleted", slog.String("user_id", id.String()), slog.Int("resumes", len(owned)))
	return nil
}

func (s *service) PendingRecruiters(ctx context.Context, page pagination.Page) (pagination.Result[auth.User], error) {
	return s.ListUsers(ctx, UserFilter{Role: auth.RoleRecruiter, Status: auth.StatusPendingApproval}, page)
}

func (s *service) ApproveRecruiter(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return s.decide(ctx, id, auth.StatusActive)
}

func (s *service) RejectRecruiter(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return s.decide(ctx, id, auth.StatusRejected)
}

func (s *service) decide(ctx context.Context, id uuid.UUID, to auth.Status) (auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return auth.User{}, err
	}
	if u.Role != auth.RoleRecruiter || u.Status != auth.StatusPendingApproval {
		return auth.User{}, ErrNotPending
	}
	u, err = s.repo.SetUserStatus(ctx, id, to, auth.StatusPendingApproval)
	if apperr.Is(err, apperr.KindConflict) {
		return auth.User{}, ErrNotPending
	}
	return u, err
}

func (s *service) Report(ctx context.Context, kind string, w Window) (Report, error) {
	r := Report{GeneratedAt: s.now()}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "users":
		users, err := s.repo.UsersIn(ctx, w)
		if err != nil {
			return Report{}, err
		}
		r.Title = "Users"
		r.Headers = []string{"ID", "Name", "Email", "Role", "Status", "Created At"}
		for _, u := range users {
			r.Rows = append(r.Rows, []string{u.ID.String(), u.Name, u.Email, string(u.Role), string(u.Status), u.CreatedAt.Format(time.RFC3339)})
		}
	case "postings":
		postings, err := s.repo.PostingsIn(ctx, w)
		if err != nil {
			return Report{}, err
		}
		r.Title = "Postings"
		r.Headers = []string{"ID", "Kind", "Title", "Company", "Location", "Work Mode", "Openings", "Created At"}
		for _, p := range postings {
			r.Rows = append(r.Rows, []string{p.ID.String(), string(p.Kind), p.Title, p.Company, p.Location, p.WorkMode, strconv.Itoa(p.Openings), p.CreatedAt.Format(time.RFC3339)})
		}
	case "applications":
		apps, err := s.repo.ApplicationsIn(ctx, w)
		if err != nil {
			return Report{}, err
		}
		r.Title = "Applications"
		r.Headers = []string{"ID", "Posting", "Company", "Student", "Email", "Status", "Applied At"}
		for _, a := range apps {
			r.Rows = append(r.Rows, []string{a.ID.String(), a.JobTitle, a.Company, a.StudentName, a.StudentEmail, string(a.Status), a.CreatedAt.Format(time.RFC3339)})
		}
	default:
		return Report{}, ErrUnknownReport
	}
	if r.Rows == nil {
		r.Rows = [][]string{}
	}
	r.Title += " report " + w.From.Format(dateLayout) + " to " + w.To.Add(-time.Nanosecond).Format(dateLayout)
	return r, nil
}

// ParseWindow reads optional from/to query values (YYYY-MM-DD or RFC3339).
// A date-only `to` includes that whole day. Missing bounds default to the last 30 days.
func ParseWindow(from, to string, now time.Time) (Window, error) {
	w := Window{To: now}
	if to = strings.TrimSpace(to); to != "" {
		t, dateOnly, err := parseBound(to)
		if err != nil {
			return Window{}, apperr.Validation("invalid date range", map[string]string{"to": "expected YYYY-MM-DD or RFC3339"})
		}
		if dateOnly {
			t = t.Add(24 * time.Hour)
		}
		w.To = t
	}
	w.From = w.To.Add(-defaultWindow)
	if from = strings.TrimSpace(from); from != "" {
		t, _, err := parseBound(from)
		if err != nil {
			return Window{}, apperr.Validation("invalid date range", map[string]string{"from": "expected YYYY-MM-DD or RFC3339"})
		}
		w.From = t
	}
	if w.From.After(w.To) {
		return Window{}, ErrInvalidWindow
	}
	return w, nil
}

func parseBound(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t.UTC(), false, err
}

// WriteCSV renders the report as CSV with a header row.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return err
	}
	return cw.Error()
}
