package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	PatientID   uuid.UUID `json:"patientId"`
	AssigneeID  uuid.UUID `json:"assigneeId"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
}

type AppointmentUpsertRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
	PatientID   uuid.UUID `json:"patientId" validate:"required"`
	AssigneeID  uuid.UUID `json:"assigneeId" validate:"required"`
	Description string    `json:"description" validate:"max=2000"`
}

type AppointmentFilter struct {
	Status     string     `query:"status"`
	AssigneeID *uuid.UUID `query:"assigneeId"`
	From       *time.Time `query:"from"`
	To         *time.Time `query:"to"`
}

type TipDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt *string   `json:"publishedAt,omitempty"`
}

type TipUpsertRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Publish bool   `json:"publish"`
}

type TipFilter struct {
	Published *bool `query:"published"`
}

type PostDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  uuid.UUID `json:"authorId"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostUpsertRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"required"`
	Pinned bool   `json:"pinned"`
}

type PostFilter struct {
	AuthorID *uuid.UUID `query:"authorId"`
	Pinned   *bool      `query:"pinned"`
}

type DidacticDTO struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	FileName string    `json:"fileName"`
	MimeType string    `json:"mimeType"`
	FileSize int64     `json:"fileSize"`
	Category string    `json:"category"`
}

// DidacticUpsertRequest is submitted as multipart form data because it
// carries the didactic file itself, not a JSON body.
type DidacticUpsertRequest struct {
	Title    string `validate:"required,max=200"`
	Category string `validate:"required,oneof=video document slide"`
	FileName string `validate:"required"`
	Content  []byte `validate:"required"`
}

type DidacticFilter struct {
	Category string `query:"category"`
}
