package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// Rows are the wire form of the entities: snake_case field names, calendar
// dates as YYYY-MM-DD strings, deletion as is_deleted/deleted_at/deleted_by.

type TaskRow struct {
	ID              string         `json:"id"`
	Title           string         `json:"title" validate:"required,max=200"`
	Type            string         `json:"type" validate:"required,oneof='Search Arbitrage' Branding 'Social Media' Other"`
	Priority        string         `json:"priority" validate:"required,oneof=Normal High Critical"`
	Status          string         `json:"status" validate:"required,oneof='To Do' 'In Progress' Review Done"`
	Points          int            `json:"points" validate:"gte=1"`
	Description     *string        `json:"description"`
	Requester       string         `json:"requester"`
	Manager         *string        `json:"manager"`
	DesignerID      *string        `json:"designer_id"`
	Designer        *TeamMemberRow `json:"designer,omitempty" validate:"-"`
	RequestDate     string         `json:"request_date" validate:"required,datetime=2006-01-02"`
	DueDate         *string        `json:"due_date"`
	Sprint          *string        `json:"sprint"`
	DeliveryLink    *string        `json:"delivery_link"`
	CompletionDate  *string        `json:"completion_date"`
	ReferenceLinks  []string       `json:"reference_links"`
	ReferenceImages []string       `json:"reference_images"`
	IsDeleted       bool           `json:"is_deleted"`
	DeletedAt       *time.Time     `json:"deleted_at"`
	DeletedBy       *string        `json:"deleted_by"`
	CreatedAt       *time.Time     `json:"created_at,omitempty"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

type SprintRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required,max=100"`
	StartDate string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string     `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive  bool       `json:"is_active"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy *string    `json:"deleted_by"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type TeamMemberRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required,max=100"`
	Avatar    *string    `json:"avatar"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Role      *string    `json:"role" validate:"omitempty,oneof=designer requester"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy *string    `json:"deleted_by"`
}

type CounterpartyRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required,max=100"`
	Avatar    *string    `json:"avatar"`
	Bio       *string    `json:"bio"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy *string    `json:"deleted_by"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRow checks the create-time constraints of a row and reports
// violations as a validation error.
func ValidateRow(op string, entity models.EntityType, row any) error {
	if err := validate.Struct(row); err != nil {
		return &Error{Op: op, Entity: entity, Kind: KindValidation, Err: err}
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func datePtr(t time.Time) *string {
	return strPtr(dateString(t))
}

func parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	// Timestamps are accepted too; only the calendar day is kept.
	if len(v) > len(models.DateLayout) {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return models.Day(ts.In(time.Local)), nil
		}
		v = v[:len(models.DateLayout)]
	}
	d, err := models.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func tombstoneRow(ts *models.Tombstone) (bool, *time.Time, *string) {
	if ts == nil {
		return false, nil, nil
	}
	at := ts.DeletedAt
	by := ts.DeletedBy
	return true, &at, &by
}

func tombstoneFromRow(deleted bool, at *time.Time, by *string) *models.Tombstone {
	if !deleted {
		return nil
	}
	ts := &models.Tombstone{DeletedBy: strVal(by)}
	if at != nil {
		ts.DeletedAt = *at
	}
	return ts
}

func timeVal(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// TaskToRow encodes a task for the wire.
func TaskToRow(t models.Task) TaskRow {
	row := TaskRow{
		ID:              t.ID,
		Title:           t.Title,
		Type:            string(t.Category),
		Priority:        string(t.Priority),
		Status:          string(t.Status),
		Points:          t.Points,
		Description:     strPtr(t.Description),
		Requester:       t.Requester,
		Manager:         strPtr(t.Manager),
		RequestDate:     dateString(t.RequestDate),
		DueDate:         datePtr(t.DueDate),
		Sprint:          strPtr(t.Sprint),
		DeliveryLink:    strPtr(t.DeliveryLink),
		ReferenceLinks:  nonNil(t.ReferenceLinks),
		ReferenceImages: nonNil(t.ReferenceImages),
		CreatedAt:       timePtr(t.CreatedAt),
		UpdatedAt:       timePtr(t.UpdatedAt),
	}
	if t.Designer != nil {
		id := t.Designer.ID
		row.DesignerID = &id
		d := TeamMemberToRow(*t.Designer)
		row.Designer = &d
	}
	if t.CompletionDate != nil {
		row.CompletionDate = datePtr(*t.CompletionDate)
	}
	row.IsDeleted, row.DeletedAt, row.DeletedBy = tombstoneRow(t.Tombstone)
	return row
}

// TaskFromRow decodes a wire task. A designer_id without a joined designer
// yields a designer carrying only the id.
func TaskFromRow(row TaskRow) (models.Task, error) {
	t := models.Task{
		ID:              row.ID,
		Title:           row.Title,
		Category:        models.Category(row.Type),
		Priority:        models.Priority(row.Priority),
		Status:          models.Status(row.Status),
		Points:          row.Points,
		Description:     strVal(row.Description),
		Requester:       row.Requester,
		Manager:         strVal(row.Manager),
		Sprint:          strVal(row.Sprint),
		DeliveryLink:    strVal(row.DeliveryLink),
		ReferenceLinks:  nonNil(row.ReferenceLinks),
		ReferenceImages: nonNil(row.ReferenceImages),
		Tombstone:       tombstoneFromRow(row.IsDeleted, row.DeletedAt, row.DeletedBy),
		CreatedAt:       timeVal(row.CreatedAt),
		UpdatedAt:       timeVal(row.UpdatedAt),
	}
	var err error
	if t.RequestDate, err = parseDate("request_date", row.RequestDate); err != nil {
		return models.Task{}, err
	}
	if t.DueDate, err = parseDate("due_date", strVal(row.DueDate)); err != nil {
		return models.Task{}, err
	}
	if row.CompletionDate != nil && *row.CompletionDate != "" {
		c, err := parseDate("completion_date", *row.CompletionDate)
		if err != nil {
			return models.Task{}, err
		}
		t.CompletionDate = &c
	}
	switch {
	case row.Designer != nil:
		d := TeamMemberFromRow(*row.Designer)
		d.Tombstone = nil
		t.Designer = &d
	case row.DesignerID != nil && *row.DesignerID != "":
		t.Designer = &models.TeamMember{ID: *row.DesignerID}
	}
	return t, nil
}

func SprintToRow(s models.Sprint) SprintRow {
	row := SprintRow{
		ID:        s.ID,
		Name:      s.Name,
		StartDate: dateString(s.StartDate),
		EndDate:   dateString(s.EndDate),
		IsActive:  s.IsActive,
		CreatedAt: timePtr(s.CreatedAt),
	}
	row.IsDeleted, row.DeletedAt, row.DeletedBy = tombstoneRow(s.Tombstone)
	return row
}

func SprintFromRow(row SprintRow) (models.Sprint, error) {
	s := models.Sprint{
		ID:        row.ID,
		Name:      row.Name,
		IsActive:  row.IsActive,
		Tombstone: tombstoneFromRow(row.IsDeleted, row.DeletedAt, row.DeletedBy),
		CreatedAt: timeVal(row.CreatedAt),
	}
	var err error
	if s.StartDate, err = parseDate("start_date", row.StartDate); err != nil {
		return models.Sprint{}, err
	}
	if s.EndDate, err = parseDate("end_date", row.EndDate); err != nil {
		return models.Sprint{}, err
	}
	return s, nil
}

func TeamMemberToRow(m models.TeamMember) TeamMemberRow {
	row := TeamMemberRow{
		ID:     m.ID,
		Name:   m.Name,
		Avatar: strPtr(m.Avatar),
		Email:  strPtr(m.Email),
		Role:   strPtr(string(m.Role)),
	}
	row.IsDeleted, row.DeletedAt, row.DeletedBy = tombstoneRow(m.Tombstone)
	return row
}

func TeamMemberFromRow(row TeamMemberRow) models.TeamMember {
	return models.TeamMember{
		ID:        row.ID,
		Name:      row.Name,
		Avatar:    strVal(row.Avatar),
		Email:     strVal(row.Email),
		Role:      models.Role(strVal(row.Role)),
		Tombstone: tombstoneFromRow(row.IsDeleted, row.DeletedAt, row.DeletedBy),
	}
}

func CounterpartyToRow(c models.Counterparty) CounterpartyRow {
	row := CounterpartyRow{
		ID:     c.ID,
		Name:   c.Name,
		Avatar: strPtr(c.Avatar),
		Bio:    strPtr(c.Bio),
		Email:  strPtr(c.Email),
	}
	row.IsDeleted, row.DeletedAt, row.DeletedBy = tombstoneRow(c.Tombstone)
	return row
}

func CounterpartyFromRow(row CounterpartyRow) models.Counterparty {
	return models.Counterparty{
		ID:        row.ID,
		Name:      row.Name,
		Avatar:    strVal(row.Avatar),
		Bio:       strVal(row.Bio),
		Email:     strVal(row.Email),
		Tombstone: tombstoneFromRow(row.IsDeleted, row.DeletedAt, row.DeletedBy),
	}
}

// DecodeTeamMember parses a realtime record. The record must be a JSON
// object with a non-empty id.
func DecodeTeamMember(raw json.RawMessage) (models.TeamMember, error) {
	var row TeamMemberRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return models.TeamMember{}, fmt.Errorf("decode team member: %w", err)
	}
	if row.ID == "" {
		return models.TeamMember{}, fmt.Errorf("decode team member: missing id")
	}
	return TeamMemberFromRow(row), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}
