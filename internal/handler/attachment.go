package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pmathis/travel-planner/backend/internal/domain"
)

// Attachment is the wire representation of a file attachment. Only metadata
// is stored; the bytes live wherever file_path points.
type Attachment struct {
	ID        uuid.UUID  `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	FileName  string     `json:"file_name"`
	FilePath  string     `json:"file_path"`
	FileType  *string    `json:"file_type,omitempty"`
	FileSize  *int64     `json:"file_size,omitempty"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateAttachmentRequest is the POST /events/{id}/attachments body. The
// event comes from the URL, never from the body.
type CreateAttachmentRequest struct {
	FileName string  `json:"file_name"`
	FilePath string  `json:"file_path"`
	FileType *string `json:"file_type"`
	FileSize *int64  `json:"file_size"`
}

// UpdateAttachmentRequest is the PUT /attachments/{id} body.
type UpdateAttachmentRequest struct {
	FileName *string `json:"file_name"`
	FilePath *string `json:"file_path"`
	FileType *string `json:"file_type"`
	FileSize *int64  `json:"file_size"`
}

// AttachmentResponse wraps a single attachment with the success envelope.
type AttachmentResponse struct {
	Success bool       `json:"success"`
	Data    Attachment `json:"data"`
	Message string     `json:"message,omitempty"`
}

// AttachmentListResponse is the paginated attachment listing body.
type AttachmentListResponse struct {
	Success    bool         `json:"success"`
	Data       []Attachment `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// listEventAttachments handles GET /api/events/{eventID}/attachments.
func (s *Server) listEventAttachments(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	p := pagination(r)

	attachments, total, err := s.attachments.ListActiveByEvent(r.Context(), eventID, p)
	if err != nil {
		writeDomainError(w, r, err, "event not found")
		return
	}

	data := make([]Attachment, len(attachments))
	for i, a := range attachments {
		data[i] = attachmentToResponse(a)
	}
	writeJSON(w, http.StatusOK, AttachmentListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// listDeletedEventAttachments handles GET /api/events/{eventID}/attachments/deleted.
func (s *Server) listDeletedEventAttachments(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	p := pagination(r)

	attachments, total, err := s.attachments.ListDeletedByEvent(r.Context(), eventID, p)
	if err != nil {
		writeDomainError(w, r, err, "event not found")
		return
	}

	data := make([]Attachment, len(attachments))
	for i, a := range attachments {
		data[i] = attachmentToResponse(a)
	}
	writeJSON(w, http.StatusOK, AttachmentListResponse{Success: true, Data: data, Pagination: newPagination(p, total)})
}

// createEventAttachment handles POST /api/events/{eventID}/attachments.
func (s *Server) createEventAttachment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	var body CreateAttachmentRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	a := domain.Attachment{
		EventID:  eventID,
		FileName: body.FileName,
		FilePath: body.FilePath,
	}
	if body.FileType != nil {
		a.FileType = *body.FileType
	}
	if body.FileSize != nil {
		a.FileSize = *body.FileSize
	}

	created, err := s.attachments.Create(r.Context(), a)
	if err != nil {
		writeDomainError(w, r, err, "event not found")
		return
	}

	writeJSON(w, http.StatusCreated, AttachmentResponse{
		Success: true,
		Data:    attachmentToResponse(created),
		Message: "Attachment created successfully",
	})
}

// getAttachment handles GET /api/attachments/{attachmentID}.
func (s *Server) getAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "attachmentID")
	if !ok {
		return
	}

	a, err := s.attachments.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "attachment not found")
		return
	}

	writeJSON(w, http.StatusOK, AttachmentResponse{Success: true, Data: attachmentToResponse(a)})
}

// updateAttachment handles PUT /api/attachments/{attachmentID}.
func (s *Server) updateAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "attachmentID")
	if !ok {
		return
	}

	var body UpdateAttachmentRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	patch := domain.AttachmentPatch{
		FileName: body.FileName,
		FilePath: body.FilePath,
		FileType: body.FileType,
		FileSize: body.FileSize,
	}

	updated, err := s.attachments.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err, "attachment not found")
		return
	}

	writeJSON(w, http.StatusOK, AttachmentResponse{
		Success: true,
		Data:    attachmentToResponse(updated),
		Message: "Attachment updated successfully",
	})
}

// deleteAttachment handles DELETE /api/attachments/{attachmentID} (soft delete).
func (s *Server) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "attachmentID")
	if !ok {
		return
	}

	deletedAt, err := s.attachments.SoftDelete(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "attachment not found")
		return
	}

	writeJSON(w, http.StatusOK, SoftDeleteResponse{
		Success:   true,
		Message:   "Attachment soft deleted successfully",
		DeletedAt: deletedAt,
	})
}

// restoreAttachment handles POST /api/attachments/{attachmentID}/restore.
func (s *Server) restoreAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "attachmentID")
	if !ok {
		return
	}

	restored, err := s.attachments.Restore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "attachment not found")
		return
	}

	writeJSON(w, http.StatusOK, AttachmentResponse{
		Success: true,
		Data:    attachmentToResponse(restored),
		Message: "Attachment restored successfully",
	})
}

// attachmentToResponse converts a domain.Attachment into its wire shape.
func attachmentToResponse(a domain.Attachment) Attachment {
	resp := Attachment{
		ID:        a.ID,
		EventID:   a.EventID,
		FileName:  a.FileName,
		FilePath:  a.FilePath,
		IsDeleted: a.IsDeleted,
		DeletedAt: a.DeletedAt,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.FileType != "" {
		resp.FileType = &a.FileType
	}
	if a.FileSize > 0 {
		size := a.FileSize
		resp.FileSize = &size
	}
	return resp
}
