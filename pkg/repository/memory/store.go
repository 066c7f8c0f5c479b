// Package memory is a process-local storage driver. It implements every
// storage port behind one lock and is used for tests and STORAGE_DRIVER=memory.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/admin"
	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/notification"
	"github.com/artem13815/jobportal/pkg/pagination"
	"github.com/artem13815/jobportal/pkg/posting"
	"github.com/artem13815/jobportal/pkg/profile"
	"github.com/artem13815/jobportal/pkg/resume"
)

var (
	_ auth.UserRepository     = (*UserRepo)(nil)
	_ auth.ResetRepository    = (*ResetRepo)(nil)
	_ profile.Repository      = (*ProfileRepo)(nil)
	_ posting.Repository      = (*PostingRepo)(nil)
	_ application.Repository  = (*ApplicationRepo)(nil)
	_ notification.Repository = (*NotificationRepo)(nil)
	_ resume.Repository       = (*ResumeRepo)(nil)
	_ admin.Repository        = (*AdminRepo)(nil)
)

type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]auth.User
	resets        map[uuid.UUID]auth.PasswordReset
	students      map[uuid.UUID]profile.Student
	companies     map[uuid.UUID]profile.Company
	postings      map[uuid.UUID]posting.Posting
	applications  map[uuid.UUID]application.Application
	notifications map[uuid.UUID]notification.Notification
	resumes       map[uuid.UUID]resume.Resume
}

func New() *Store {
	return &Store{
		users:         map[uuid.UUID]auth.User{},
		resets:        map[uuid.UUID]auth.PasswordReset{},
		students:      map[uuid.UUID]profile.Student{},
		companies:     map[uuid.UUID]profile.Company{},
		postings:      map[uuid.UUID]posting.Posting{},
		applications:  map[uuid.UUID]application.Application{},
		notifications: map[uuid.UUID]notification.Notification{},
		resumes:       map[uuid.UUID]resume.Resume{},
	}
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) Resets() *ResetRepo               { return &ResetRepo{s} }
func (s *Store) Profiles() *ProfileRepo           { return &ProfileRepo{s} }
func (s *Store) Postings() *PostingRepo           { return &PostingRepo{s} }
func (s *Store) Applications() *ApplicationRepo   { return &ApplicationRepo{s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s} }
func (s *Store) Resumes() *ResumeRepo             { return &ResumeRepo{s} }
func (s *Store) Admin() *AdminRepo                { return &AdminRepo{s} }

// newestFirst orders by creation time descending with the id as tie-break,
// the same order the postgres driver uses.
func newestFirst[T any](items []T, at func(T) time.Time, id func(T) uuid.UUID) {
	slices.SortFunc(items, func(a, b T) int {
		if c := at(b).Compare(at(a)); c != 0 {
			return c
		}
		return strings.Compare(id(b).String(), id(a).String())
	})
}

func paginate[T any](items []T, p pagination.Page) ([]T, int) {
	return pagination.Slice(items, p), len(items)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
