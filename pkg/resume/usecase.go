package resume

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/apperr"
	"github.com/artem13815/jobportal/pkg/filestore"
	"github.com/artem13815/jobportal/pkg/llm"
	"github.com/artem13815/jobportal/pkg/profile"
)

// UploadInput is one received multipart file.
type UploadInput struct {
	Filename string
	MimeType string
	Data     []byte
}

// Generated is an AI-built resume draft.
type Generated struct {
	TargetRole string `json:"targetRole"`
	Content    string `json:"content"`
}

// ScoreResult is the AI review of a stored resume.
type ScoreResult struct {
	ResumeID uuid.UUID `json:"resumeId"`
	llm.Score
}

type UseCase interface {
	Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput) (Resume, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Resume, error)
	// SetDefault returns the owner's list after the change.
	SetDefault(ctx context.Context, ownerID, id uuid.UUID) ([]Resume, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	BuildWithAI(ctx context.Context, ownerID uuid.UUID, targetRole string) (Generated, error)
	CheckScore(ctx context.Context, ownerID, id uuid.UUID, targetRole string) (ScoreResult, error)
}

type service struct {
	repo      Repository
	files     filestore.Store
	profiles  profile.Repository
	assistant llm.Assistant
	maxBytes  int64
	log       *slog.Logger
}

func NewService(repo Repository, files filestore.Store, profiles profile.Repository, assistant llm.Assistant, maxBytes int64, log *slog.Logger) UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &service{repo: repo, files: files, profiles: profiles, assistant: assistant, maxBytes: maxBytes, log: log}
}

// Extension reports the lower-case extension when the upload format is accepted.
func Extension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExt[ext]
	return ext, ok
}

func (s *service) Upload(ctx context.Context, ownerID uuid.UUID, in UploadInput) (Resume, error) {
	ext, ok := Extension(in.Filename)
	if !ok {
		return Resume{}, ErrUnsupportedFormat
	}
	if len(in.Data) == 0 {
		return Resume{}, ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		return Resume{}, apperr.Validation(fmt.Sprintf("file is too large: limit is %d bytes", s.maxBytes), map[string]string{"resume": "too large"})
	}

	id := uuid.New()
	key := fmt.Sprintf("resumes/%s/%s%s", ownerID, id, ext)
	mimeType := allowedExt[ext]
	url, err := s.files.Put(ctx, key, mimeType, bytes.NewReader(in.Data))
	if err != nil {
		return Resume{}, apperr.Wrap(apperr.KindInternal, "failed to store file", err)
	}
	r, err := s.repo.Create(ctx, Resume{
		ID:         id,
		OwnerID:    ownerID,
		Filename:   filepath.Base(in.Filename),
		MimeType:   mimeType,
		Size:       int64(len(in.Data)),
		StorageKey: key,
		URL:        url,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.removeFile(ctx, key)
		return Resume{}, err
	}
	return r, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Resume, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Resume{}
	}
	return items, nil
}

func (s *service) SetDefault(ctx context.Context, ownerID, id uuid.UUID) ([]Resume, error) {
	if err := s.repo.SetDefault(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.List(ctx, ownerID)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	r, err := s.repo.DeleteForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	s.removeFile(ctx, r.StorageKey)
	return nil
}

// removeFile is best-effort: metadata is authoritative.
func (s *service) removeFile(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		s.log.Warn("resume file cleanup failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *service) BuildWithAI(ctx context.Context, ownerID uuid.UUID, targetRole string) (Generated, error) {
	p, err := s.profiles.GetStudent(ctx, ownerID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return Generated{}, apperr.Validation("fill in your student profile before generating a resume", nil)
		}
		return Generated{}, err
	}
	targetRole = strings.TrimSpace(targetRole)
	content, err := s.assistant.Generate(ctx, BuildPrompt(p, targetRole))
	if err != nil {
		return Generated{}, err
	}
	return Generated{TargetRole: targetRole, Content: content}, nil
}

func (s *service) CheckScore(ctx context.Context, ownerID, id uuid.UUID, targetRole string) (ScoreResult, error) {
	r, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return ScoreResult{}, err
	}
	if ext, _ := Extension(r.Filename); ext != ".pdf" && ext != ".docx" {
		return ScoreResult{}, ErrNotScorable
	}
	rc, err := s.files.Get(ctx, r.StorageKey)
	if err != nil {
		return ScoreResult{}, apperr.Wrap(apperr.KindInternal, "failed to read resume file", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return ScoreResult{}, apperr.Wrap(apperr.KindInternal, "failed to read resume file", err)
	}
	text, err := ParseResumeText(r.Filename, data)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return ScoreResult{}, err
		}
		return ScoreResult{}, apperr.Wrap(apperr.KindValidation, "resume file could not be parsed", err)
	}
	if text == "" {
		return ScoreResult{}, ErrEmptyText
	}
	score, err := s.assistant.Score(ctx, text, targetRole)
	if err != nil {
		return ScoreResult{}, err
	}
	return ScoreResult{ResumeID: r.ID, Score: score}, nil
}

// BuildPrompt renders the student profile as the generation request.
func BuildPrompt(p profile.Student, targetRole string) string {
	var b strings.Builder
	b.WriteString("Write a one-page resume in Markdown for the candidate below.\n")
	if targetRole != "" {
		fmt.Fprintf(&b, "Tailor it for the role: %s.\n", targetRole)
	}
	b.WriteString("Sections: Summary, Skills, Experience, Education, Links. Omit empty sections.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", p.FullName)
	for _, kv := range [][2]string{
		{"Headline", p.Headline}, {"Location", p.Location}, {"Phone", p.Phone},
		{"About", p.Bio}, {"LinkedIn", p.LinkedIn}, {"GitHub", p.GitHub}, {"Portfolio", p.Portfolio},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
		}
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Experience) > 0 {
		b.WriteString("Experience:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "- %s at %s (%s to %s): %s\n", e.Role, e.Company, e.Start, e.End, e.Description)
		}
	}
	if len(p.Education) > 0 {
		b.WriteString("Education:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&b, "- %s in %s, %s (%s to %s)", e.Degree, e.FieldOfStudy, e.Institution, e.Start, e.End)
			if e.Grade != "" {
				fmt.Fprintf(&b, ", grade %s", e.Grade)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
