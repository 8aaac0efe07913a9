package seed

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/campulist/campulist/internal/app/auth"
	appModels "github.com/campulist/campulist/internal/app/models"
	appRepos "github.com/campulist/campulist/internal/app/repositories"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Campus ids are stable across runs so links and tokens survive restarts.
const (
	CampusKAIST   = "3c8d5c48-f693-4f67-bf54-df73015f9e56"
	CampusCNU     = "84a7e7c4-44a6-4b2e-9f03-1d7fdf04f201"
	CampusHanbat  = "95b5d1a7-6f1d-4d66-a4e3-7f5959f6d202"
	CampusMokwon  = "a4f4c6f8-0d9f-4b2a-8f62-0b6bbf7ae303"
	CampusPaichai = "b68f0e57-a053-4c23-93b5-613f20a44404"
	CampusWoosong = "c7b9bfc1-4f5f-49b4-a0f8-11ad9e555505"
)

var seedNamespace = uuid.MustParse("6f1c2a0e-8d7b-4c39-9a51-2b7e0c4d9f10")

// StableID derives a deterministic UUID for a seed record name.
func StableID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// Summary counts the records of a dataset.
type Summary struct {
	Campuses     int `json:"campuses"`
	Users        int `json:"users"`
	Posts        int `json:"posts"`
	ChatThreads  int `json:"chat_threads"`
	ChatMessages int `json:"chat_messages"`
	Reports      int `json:"reports"`
}

// Summarize counts the records of ds.
func Summarize(ds appRepos.Dataset) Summary {
	return Summary{
		Campuses:     len(ds.Campuses),
		Users:        len(ds.Users),
		Posts:        len(ds.Posts),
		ChatThreads:  len(ds.ChatThreads),
		ChatMessages: len(ds.ChatMessages),
		Reports:      len(ds.Reports),
	}
}

// Load returns the dataset at path, or the built-in one when path is empty.
// Either way the result has passed Validate.
func Load(path string, now time.Time) (appRepos.Dataset, error) {
	var (
		ds  appRepos.Dataset
		err error
	)
	if path == "" {
		ds = Default(now)
	} else if ds, err = LoadFile(path); err != nil {
		return appRepos.Dataset{}, err
	}

	if err := Validate(ds); err != nil {
		return appRepos.Dataset{}, err
	}
	return ds, nil
}

// LoadFile reads a YAML dataset.
func LoadFile(path string) (appRepos.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return appRepos.Dataset{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var ds appRepos.Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return appRepos.Dataset{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return ds, nil
}

// Validate checks the references between records and the enum values they
// carry. All problems are reported together.
func Validate(ds appRepos.Dataset) error {
	var errs []error
	addErr := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	campuses := map[string]bool{}
	for _, c := range ds.Campuses {
		campuses[c.ID] = true
	}

	users := map[string]*appModels.User{}
	hasStudent := false
	for i := range ds.Users {
		u := &ds.Users[i]
		users[u.ID] = u
		if !campuses[u.CampusID] {
			addErr("user %s: unknown campus %q", u.ID, u.CampusID)
		}
		if !u.Role.IsValid() {
			addErr("user %s: invalid role %q", u.ID, u.Role)
		}
		if u.StudentType != nil && (u.Role != appModels.RoleStudent || !u.StudentType.IsValid()) {
			addErr("user %s: student_type %q not allowed", u.ID, *u.StudentType)
		}
		if u.Role == appModels.RoleStudent && !u.IsDeleted() {
			hasStudent = true
		}
	}
	if !hasStudent {
		addErr("dataset has no active student for the default session")
	}

	posts := map[string]*appModels.Post{}
	for i := range ds.Posts {
		p := &ds.Posts[i]
		posts[p.ID] = p
		if !campuses[p.CampusID] {
			addErr("post %s: unknown campus %q", p.ID, p.CampusID)
		}
		if !p.Category.IsValid() {
			addErr("post %s: invalid category %q", p.ID, p.Category)
		}
		if !p.Status.IsValid() {
			addErr("post %s: invalid status %q", p.ID, p.Status)
		}
		author, ok := users[p.AuthorID]
		if !ok {
			addErr("post %s: unknown author %q", p.ID, p.AuthorID)
			continue
		}
		if author.CampusID != p.CampusID && author.Role != appModels.RoleAdmin {
			addErr("post %s: author %s belongs to another campus", p.ID, author.ID)
		}
		if !auth.CanCreateInCategory(appModels.SessionForUser(author), p.Category) {
			addErr("post %s: role %s cannot post in %s", p.ID, author.Role, p.Category)
		}
		if p.PriceKRW != nil && *p.PriceKRW < 0 {
			addErr("post %s: negative price", p.ID)
		}
	}

	threads := map[string]*appModels.ChatThread{}
	for i := range ds.ChatThreads {
		t := &ds.ChatThreads[i]
		threads[t.ID] = t
		post, ok := posts[t.PostID]
		if !ok {
			addErr("chat thread %s: unknown post %q", t.ID, t.PostID)
		} else if post.CampusID != t.CampusID {
			addErr("chat thread %s: campus differs from its post", t.ID)
		}
		if len(t.ParticipantIDs) != 2 {
			addErr("chat thread %s: expected 2 participants, got %d", t.ID, len(t.ParticipantIDs))
		}
		for _, id := range t.ParticipantIDs {
			if _, ok := users[id]; !ok {
				addErr("chat thread %s: unknown participant %q", t.ID, id)
			}
		}
		if t.Status != appModels.ThreadOpen && t.Status != appModels.ThreadClosed {
			addErr("chat thread %s: invalid status %q", t.ID, t.Status)
		}
	}

	for _, m := range ds.ChatMessages {
		t, ok := threads[m.ThreadID]
		if !ok {
			addErr("chat message %s: unknown thread %q", m.ID, m.ThreadID)
			continue
		}
		if !t.HasParticipant(m.SenderID) {
			addErr("chat message %s: sender %q is not a participant", m.ID, m.SenderID)
		}
	}

	for _, r := range ds.Reports {
		if r.TargetType != appModels.TargetPost {
			addErr("report %s: unsupported target type %q", r.ID, r.TargetType)
		} else if _, ok := posts[r.TargetID]; !ok {
			addErr("report %s: unknown target post %q", r.ID, r.TargetID)
		}
		if _, ok := users[r.ReporterID]; !ok {
			addErr("report %s: unknown reporter %q", r.ID, r.ReporterID)
		}
		if !r.Reason.IsValid() {
			addErr("report %s: invalid reason %q", r.ID, r.Reason)
		}
		if !r.Status.IsValid() {
			addErr("report %s: invalid status %q", r.ID, r.Status)
		}
	}

	return errors.Join(errs...)
}
