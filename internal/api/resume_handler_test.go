package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"mycv/internal/database"
	"mycv/internal/errcode"
	"mycv/internal/resume"
	objstore "mycv/internal/storage"
	"mycv/internal/tasks"
)

func newTestResumeHandler(t *testing.T) (*ResumeHandler, *fakeStorage, *fakeQueue) {
	t.Helper()
	db := newTestDB(t)
	storage := newFakeStorage()
	queue := &fakeQueue{}
	h := NewResumeHandler(db, queue, storage, newPrinter(), newFakeCounter(), nil, 0)
	return h, storage, queue
}

func createResume(t *testing.T, h *ResumeHandler, userID string, body any) resumeResponse {
	t.Helper()
	c, w := newTestContext(t, http.MethodPost, "/v1/resumes", body, userID)
	h.CreateResume(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var resp resumeResponse
	decodeBody(t, w, &resp)
	return resp
}

func TestCreateResume_DefaultsToSample(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)

	resp := createResume(t, h, "user-1", nil)
	if resp.Title != resume.SampleTitle {
		t.Fatalf("unexpected title %q", resp.Title)
	}
	if resp.TemplateID != "t1" {
		t.Fatalf("unexpected template %q", resp.TemplateID)
	}
	if resp.Status != database.StatusDraft {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	doc, err := resume.Decode(resp.Content, resume.FormatJSON)
	if err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if !doc.Loaded() || doc.Basics.FullName != resume.Sample().Basics.FullName {
		t.Fatalf("expected sample document, got %+v", doc.Basics)
	}
}

func TestCreateResume_RejectsInvalidDocument(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)

	body := `{"title":"x","content":{"basics":{"fullName":"Ada"},"sections":[{"id":"a","type":"chart"}]}}`
	c, w := newTestContext(t, http.MethodPost, "/v1/resumes", body, "user-1")
	h.CreateResume(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}
	var resp errorResponse
	decodeBody(t, w, &resp)
	if resp.Code != errcode.InvalidDocument || resp.Error == "" {
		t.Fatalf("unexpected error body %+v", resp)
	}
	if len(c.Errors) != 1 {
		t.Fatalf("error must be attached for the access log, got %v", c.Errors)
	}
}

func TestCreateResume_AcceptsNullFields(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)

	body := `{"title":"Nulls","content":{"basics":{"fullName":"Ada","phone":null},"sections":[{"id":"a","type":"text","content":null}]}}`
	c, w := newTestContext(t, http.MethodPost, "/v1/resumes", body, "user-1")
	h.CreateResume(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateResume_RequiresUser(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)

	c, w := newTestContext(t, http.MethodPost, "/v1/resumes", nil, "")
	h.CreateResume(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestCreateResume_LimitsByCount(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)
	h.maxItems = 1

	createResume(t, h, "user-1", nil)

	c, w := newTestContext(t, http.MethodPost, "/v1/resumes", nil, "user-1")
	h.CreateResume(c)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}

func TestGetResume_ScopedToOwner(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)
	created := createResume(t, h, "owner", nil)

	c, w := newTestContext(t, http.MethodGet, "/v1/resumes/x", nil, "intruder", idParam(created.ID))
	h.GetResume(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/resumes/abc", nil, "owner", idParam(0))
	h.GetResume(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/resumes/x", nil, "owner", idParam(created.ID))
	h.GetResume(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestListAndUpdateResume(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)
	created := createResume(t, h, "user-1", map[string]any{"title": "First"})
	createResume(t, h, "user-2", nil)

	update := map[string]any{
		"title":       "Renamed",
		"template_id": "8",
		"theme":       map[string]any{"color": "#112233", "fontSize": "large"},
		"content": map[string]any{
			"basics":   map[string]any{"fullName": "Grace Hopper"},
			"sections": []any{map[string]any{"id": "a", "type": "text", "content": "COBOL"}},
		},
	}
	c, w := newTestContext(t, http.MethodPut, "/v1/resumes/x", update, "user-1", idParam(created.ID))
	h.UpdateResume(c)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var updated resumeResponse
	decodeBody(t, w, &updated)
	if updated.Title != "Renamed" || updated.TemplateID != "t8" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if !strings.Contains(string(updated.Theme), "#112233") {
		t.Fatalf("theme not stored: %s", updated.Theme)
	}
	if !strings.Contains(string(updated.Content), "Grace Hopper") {
		t.Fatalf("content not stored: %s", updated.Content)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/resumes", nil, "user-1")
	h.ListResumes(c)
	var items []resumeListItem
	decodeBody(t, w, &items)
	if len(items) != 1 || items[0].Title != "Renamed" {
		t.Fatalf("unexpected list %+v", items)
	}
}

func TestPrintResume_WatermarkFollowsProfile(t *testing.T) {
	h, _, _ := newTestResumeHandler(t)
	created := createResume(t, h, "user-1", nil)

	c, w := newTestContext(t, http.MethodGet, "/v1/resumes/x/print", nil, "user-1", idParam(created.ID))
	h.PrintResume(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), `class="watermark"`) {
		t.Fatalf("free users must see the watermark")
	}

	if err := h.db.Create(&database.Profile{ID: "user-1", SubscriptionStatus: database.SubscriptionActive}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	c, w = newTestContext(t, http.MethodGet, "/v1/resumes/x/print", nil, "user-1", idParam(created.ID))
	h.PrintResume(c)
	if strings.Contains(w.Body.String(), `class="watermark"`) {
		t.Fatalf("premium users must not see the watermark")
	}
}

func TestExportResume_EnqueuesTask(t *testing.T) {
	h, _, queue := newTestResumeHandler(t)
	created := createResume(t, h, "user-1", nil)

	c, w := newTestContext(t, http.MethodPost, "/v1/resumes/x/export", nil, "user-1", idParam(created.ID))
	h.ExportResume(c)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d body=%s", w.Code, w.Body.String())
	}
	if len(queue.tasks) != 1 || queue.tasks[0].Type() != tasks.TypePDFExport {
		t.Fatalf("unexpected tasks %+v", queue.tasks)
	}
	payload, err := tasks.ParsePDFExportPayload(queue.tasks[0].Payload())
	if err != nil || payload.ResumeID != created.ID {
		t.Fatalf("unexpected payload %+v err=%v", payload, err)
	}

	var row database.Resume
	if err := h.db.First(&row, created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Status != database.StatusPending {
		t.Fatalf("expected pending status, got %q", row.Status)
	}
}

func TestExportResume_RateLimited(t *testing.T) {
	h, _, queue := newTestResumeHandler(t)
	created := createResume(t, h, "user-1", nil)

	counter := newFakeCounter()
	counter.counts[exportLimit.key("user-1")] = exportLimit.limit
	h.counter = counter

	c, w := newTestContext(t, http.MethodPost, "/v1/resumes/x/export", nil, "user-1", idParam(created.ID))
	h.ExportResume(c)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", w.Code)
	}
	if len(queue.tasks) != 0 {
		t.Fatalf("rate limited export must not enqueue")
	}
}

func TestGetDownloadLink(t *testing.T) {
	h, storage, _ := newTestResumeHandler(t)
	created := createResume(t, h, "user-1", map[string]any{"title": "Alex CV"})

	c, w := newTestContext(t, http.MethodGet, "/v1/resumes/x/download-link", nil, "user-1", idParam(created.ID))
	h.GetDownloadLink(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}

	key := "generated-resumes/user-1/a.pdf"
	if err := h.db.Model(&database.Resume{}).Where("id = ?", created.ID).Update("pdf_url", key).Error; err != nil {
		t.Fatalf("seed pdf url: %v", err)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/resumes/x/download-link", nil, "user-1", idParam(created.ID))
	h.GetDownloadLink(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["url"] != "https://example.invalid/"+key {
		t.Fatalf("unexpected url %q", resp["url"])
	}
	if storage.filenames[key] != "Alex CV.pdf" {
		t.Fatalf("unexpected filename %q", storage.filenames[key])
	}
}

func TestDeleteResume_RemovesArtifacts(t *testing.T) {
	h, storage, _ := newTestResumeHandler(t)
	created := createResume(t, h, "user-1", nil)
	key := "generated-resumes/user-1/b.pdf"
	if err := h.db.Model(&database.Resume{}).Where("id = ?", created.ID).Update("pdf_url", key).Error; err != nil {
		t.Fatalf("seed pdf url: %v", err)
	}

	c, w := newTestContext(t, http.MethodDelete, "/v1/resumes/x", nil, "user-1", idParam(created.ID))
	h.DeleteResume(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != key {
		t.Fatalf("unexpected deleted objects %v", storage.deleted)
	}
	if len(storage.deletedPrefixes) != 1 || storage.deletedPrefixes[0] != objstore.PreviewPrefix(created.ID) {
		t.Fatalf("unexpected deleted prefixes %v", storage.deletedPrefixes)
	}

	if _, err := h.getResumeForUser(context.Background(), idParam(created.ID).Value, "user-1"); err == nil {
		t.Fatalf("expected resume to be gone")
	}
}
