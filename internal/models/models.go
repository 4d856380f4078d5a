package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for request, due and completion dates.
const DateLayout = "2006-01-02"

// Status enumerates the board columns a task can sit in. Any status may be set
// from any other status.
type Status string

const (
	StatusTodo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusDone       Status = "Done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// ParseStatus accepts the display value of a status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

// Priority is ordered Normal < High < Critical.
type Priority string

const (
	PriorityNormal   Priority = "Normal"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Rank orders priorities; unknown values rank below Normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityNormal:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	}
	return 0
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

// Category is the kind of design work a task asks for.
type Category string

const (
	CategorySearchArbitrage Category = "Search Arbitrage"
	CategoryBranding        Category = "Branding"
	CategorySocialMedia     Category = "Social Media"
	CategoryOther           Category = "Other"
)

var Categories = []Category{CategorySearchArbitrage, CategoryBranding, CategorySocialMedia, CategoryOther}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Role separates design contributors from requesting parties drawn from the
// same team collection.
type Role string

const (
	RoleDesigner  Role = "designer"
	RoleRequester Role = "requester"
)

// EntityType names one of the four synchronized collections.
type EntityType string

const (
	EntityTask         EntityType = "Task"
	EntitySprint       EntityType = "Sprint"
	EntityTeamMember   EntityType = "TeamMember"
	EntityCounterparty EntityType = "Counterparty"
)

// Tombstone marks an entity as soft-deleted. Both fields are always set together.
type Tombstone struct {
	DeletedAt time.Time
	DeletedBy string
}

// TeamMember is a person on the team; tasks embed a copy as their designer.
type TeamMember struct {
	ID        string
	Name      string
	Avatar    string
	Email     string
	Role      Role
	Tombstone *Tombstone
}

// Counterparty is a requesting party outside the design team.
type Counterparty struct {
	ID        string
	Name      string
	Avatar    string
	Bio       string
	Email     string
	Tombstone *Tombstone
}

// Sprint is a named date range; at most one sprint is active at a time.
type Sprint struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	Tombstone *Tombstone
	CreatedAt time.Time
}

// Task is a unit of design work tracked on the board.
type Task struct {
	ID       string
	Title    string
	Category Category
	Priority Priority
	Status   Status
	Points   int

	Description string
	Requester   string // counterparty name, not id
	Manager     string
	Designer    *TeamMember
	Sprint      string // sprint name, not id

	RequestDate    time.Time
	DueDate        time.Time
	DeliveryLink   string
	CompletionDate *time.Time

	ReferenceLinks  []string
	ReferenceImages []string

	Tombstone *Tombstone
	CreatedAt time.Time
	UpdatedAt time.Time

	// Pending is true while the task carries a locally fabricated id.
	Pending bool
}

// Brief is the structured draft returned by a brief extractor.
type Brief struct {
	Title          string
	Requester      string
	Description    string
	Points         int
	Sprint         string
	Category       Category
	Priority       Priority
	ReferenceLinks []string
}

// Day truncates t to its local calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a DateLayout string in the local time zone.
func ParseDay(v string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, v, time.Local)
}

func (t Task) Deleted() bool         { return t.Tombstone != nil }
func (s Sprint) Deleted() bool       { return s.Tombstone != nil }
func (m TeamMember) Deleted() bool   { return m.Tombstone != nil }
func (c Counterparty) Deleted() bool { return c.Tombstone != nil }

// Clone returns a deep copy so callers cannot alias store-owned slices or pointers.
func (t Task) Clone() Task {
	out := t
	if t.Designer != nil {
		d := t.Designer.Clone()
		out.Designer = &d
	}
	if t.CompletionDate != nil {
		c := *t.CompletionDate
		out.CompletionDate = &c
	}
	if t.ReferenceLinks != nil {
		out.ReferenceLinks = append([]string(nil), t.ReferenceLinks...)
	}
	if t.ReferenceImages != nil {
		out.ReferenceImages = append([]string(nil), t.ReferenceImages...)
	}
	out.Tombstone = cloneTombstone(t.Tombstone)
	return out
}

func (s Sprint) Clone() Sprint {
	out := s
	out.Tombstone = cloneTombstone(s.Tombstone)
	return out
}

func (m TeamMember) Clone() TeamMember {
	out := m
	out.Tombstone = cloneTombstone(m.Tombstone)
	return out
}

func (c Counterparty) Clone() Counterparty {
	out := c
	out.Tombstone = cloneTombstone(c.Tombstone)
	return out
}

func cloneTombstone(t *Tombstone) *Tombstone {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
