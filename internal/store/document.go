package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hwstars/internal/model"
)

// Collection names as they appear in the persisted document.
const (
	CollectionUsers           = "users"
	CollectionHomeworks       = "homeworks"
	CollectionSubmissions     = "submissions"
	CollectionFeedbacks       = "feedbacks"
	CollectionSessions        = "sessions"
	CollectionStudentProfiles = "studentProfiles"
	CollectionCounters        = "counters"
)

// Collections lists every collection a backend persists.
var Collections = []string{
	CollectionUsers,
	CollectionHomeworks,
	CollectionSubmissions,
	CollectionFeedbacks,
	CollectionSessions,
	CollectionStudentProfiles,
	CollectionCounters,
}

// Counters are monotonic sequences kept next to the collections.
type Counters struct {
	Homeworks int `json:"homeworks"`
}

// Document is the whole persisted state: flat collections plus counters.
type Document struct {
	Users           []model.User           `json:"users"`
	Homeworks       []model.Homework       `json:"homeworks"`
	Submissions     []model.Submission     `json:"submissions"`
	Feedbacks       []model.Feedback       `json:"feedbacks"`
	Sessions        []model.Session        `json:"sessions"`
	StudentProfiles []model.StudentProfile `json:"studentProfiles"`
	Counters        Counters               `json:"counters"`
}

// NewDocument returns an empty document with non-nil collections.
func NewDocument() *Document {
	d := &Document{}
	d.normalize()
	return d
}

// normalize fills nil collections and seeds counters for documents written
// before the counters existed.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []model.User{}
	}
	if d.Homeworks == nil {
		d.Homeworks = []model.Homework{}
	}
	if d.Submissions == nil {
		d.Submissions = []model.Submission{}
	}
	if d.Feedbacks == nil {
		d.Feedbacks = []model.Feedback{}
	}
	if d.Sessions == nil {
		d.Sessions = []model.Session{}
	}
	if d.StudentProfiles == nil {
		d.StudentProfiles = []model.StudentProfile{}
	}
	if d.Counters.Homeworks < len(d.Homeworks) {
		d.Counters.Homeworks = len(d.Homeworks)
	}
}

// Clone returns a deep copy, so fakes can hand out documents without sharing slices.
func (d *Document) Clone() *Document {
	out := &Document{
		Users:           append([]model.User(nil), d.Users...),
		Homeworks:       append([]model.Homework(nil), d.Homeworks...),
		Submissions:     append([]model.Submission(nil), d.Submissions...),
		Feedbacks:       append([]model.Feedback(nil), d.Feedbacks...),
		Sessions:        append([]model.Session(nil), d.Sessions...),
		StudentProfiles: append([]model.StudentProfile(nil), d.StudentProfiles...),
		Counters:        d.Counters,
	}
	out.normalize()
	return out
}

// UserByID returns the user with the given id, or nil.
func (d *Document) UserByID(id string) *model.User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByUsername returns the user with the given username, or nil.
func (d *Document) UserByUsername(username string) *model.User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// ActiveSession returns the session for token if it has not expired at now.
func (d *Document) ActiveSession(token string, now time.Time) *model.Session {
	if token == "" {
		return nil
	}
	for i := range d.Sessions {
		if d.Sessions[i].Token == token && d.Sessions[i].ActiveAt(now) {
			return &d.Sessions[i]
		}
	}
	return nil
}

// HomeworkByID returns the homework with the given id, or nil.
func (d *Document) HomeworkByID(id string) *model.Homework {
	for i := range d.Homeworks {
		if d.Homeworks[i].ID == id {
			return &d.Homeworks[i]
		}
	}
	return nil
}

// NextHomeworkNumber advances the homework counter and returns its display number.
func (d *Document) NextHomeworkNumber() string {
	d.Counters.Homeworks++
	return model.FormatHomeworkNumber(d.Counters.Homeworks)
}

// SubmissionByID returns the submission with the given id, or nil.
func (d *Document) SubmissionByID(id string) *model.Submission {
	for i := range d.Submissions {
		if d.Submissions[i].ID == id {
			return &d.Submissions[i]
		}
	}
	return nil
}

// FeedbackForSubmission returns the feedback left on a submission, or nil.
func (d *Document) FeedbackForSubmission(submissionID string) *model.Feedback {
	for i := range d.Feedbacks {
		if d.Feedbacks[i].SubmissionID == submissionID {
			return &d.Feedbacks[i]
		}
	}
	return nil
}

// EnsureProfile returns the student's profile, creating an empty one first if
// needed. The returned pointer is valid until the next append to StudentProfiles.
func (d *Document) EnsureProfile(studentID string, now time.Time) *model.StudentProfile {
	for i := range d.StudentProfiles {
		if d.StudentProfiles[i].StudentID == studentID {
			return &d.StudentProfiles[i]
		}
	}
	d.StudentProfiles = append(d.StudentProfiles, model.StudentProfile{
		ID:        uuid.NewString(),
		StudentID: studentID,
		UpdatedAt: now,
	})
	return &d.StudentProfiles[len(d.StudentProfiles)-1]
}

// encodeCollections splits a document into one JSON value per collection.
func encodeCollections(d *Document) (map[string][]byte, error) {
	values := map[string]interface{}{
		CollectionUsers:           d.Users,
		CollectionHomeworks:       d.Homeworks,
		CollectionSubmissions:     d.Submissions,
		CollectionFeedbacks:       d.Feedbacks,
		CollectionSessions:        d.Sessions,
		CollectionStudentProfiles: d.StudentProfiles,
		CollectionCounters:        d.Counters,
	}
	out := make(map[string][]byte, len(values))
	for name, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// decodeCollections is the inverse of encodeCollections. Missing collections
// decode as empty.
func decodeCollections(raw map[string][]byte) (*Document, error) {
	d := &Document{}
	targets := map[string]interface{}{
		CollectionUsers:           &d.Users,
		CollectionHomeworks:       &d.Homeworks,
		CollectionSubmissions:     &d.Submissions,
		CollectionFeedbacks:       &d.Feedbacks,
		CollectionSessions:        &d.Sessions,
		CollectionStudentProfiles: &d.StudentProfiles,
		CollectionCounters:        &d.Counters,
	}
	for name, target := range targets {
		data, ok := raw[name]
		if !ok || len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	d.normalize()
	return d, nil
}
