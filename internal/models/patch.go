package models

import "time"

// TaskDraft is the partial task a caller hands to create. Zero values mean
// "not provided" and are defaulted by the engine.
type TaskDraft struct {
	Title           string
	Category        Category
	Priority        Priority
	Points          int
	Description     string
	Requester       string
	Manager         string
	Designer        *TeamMember
	Sprint          string
	RequestDate     time.Time
	DueDate         time.Time
	ReferenceLinks  []string
	ReferenceImages []string
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Category    *Category
	Priority    *Priority
	Status      *Status
	Points      *int
	Description *string
	Requester   *string
	Manager     *string
	Sprint      *string

	Designer      *TeamMember
	ClearDesigner bool

	RequestDate  *time.Time
	DueDate      *time.Time
	DeliveryLink *string

	CompletionDate      *time.Time
	ClearCompletionDate bool

	ReferenceLinks  *[]string
	ReferenceImages *[]string
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Category == nil && p.Priority == nil && p.Status == nil &&
		p.Points == nil && p.Description == nil && p.Requester == nil && p.Manager == nil &&
		p.Sprint == nil && p.Designer == nil && !p.ClearDesigner && p.RequestDate == nil &&
		p.DueDate == nil && p.DeliveryLink == nil && p.CompletionDate == nil &&
		!p.ClearCompletionDate && p.ReferenceLinks == nil && p.ReferenceImages == nil
}

// Apply returns a copy of t with the patch merged in.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Points != nil {
		out.Points = *p.Points
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Requester != nil {
		out.Requester = *p.Requester
	}
	if p.Manager != nil {
		out.Manager = *p.Manager
	}
	if p.Sprint != nil {
		out.Sprint = *p.Sprint
	}
	if p.ClearDesigner {
		out.Designer = nil
	} else if p.Designer != nil {
		d := p.Designer.Clone()
		out.Designer = &d
	}
	if p.RequestDate != nil {
		out.RequestDate = *p.RequestDate
	}
	if p.DueDate != nil {
		out.DueDate = *p.DueDate
	}
	if p.DeliveryLink != nil {
		out.DeliveryLink = *p.DeliveryLink
	}
	if p.ClearCompletionDate {
		out.CompletionDate = nil
	} else if p.CompletionDate != nil {
		c := *p.CompletionDate
		out.CompletionDate = &c
	}
	if p.ReferenceLinks != nil {
		out.ReferenceLinks = append([]string{}, (*p.ReferenceLinks)...)
	}
	if p.ReferenceImages != nil {
		out.ReferenceImages = append([]string{}, (*p.ReferenceImages)...)
	}
	return out
}

// SprintPatch is a partial sprint update.
type SprintPatch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}

func (p SprintPatch) Apply(s Sprint) Sprint {
	out := s.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	return out
}

// TeamMemberPatch is a partial team member update.
type TeamMemberPatch struct {
	Name   *string
	Avatar *string
	Email  *string
	Role   *Role
}

func (p TeamMemberPatch) Apply(m TeamMember) TeamMember {
	out := m.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Role != nil {
		out.Role = *p.Role
	}
	return out
}

// CounterpartyPatch is a partial counterparty update.
type CounterpartyPatch struct {
	Name   *string
	Avatar *string
	Bio    *string
	Email  *string
}

func (p CounterpartyPatch) Apply(c Counterparty) Counterparty {
	out := c.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		out.Bio = *p.Bio
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	return out
}
