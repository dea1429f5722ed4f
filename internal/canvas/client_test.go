// SPDX-License-Identifier: MPL-2.0

package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListModules_Pagination(t *testing.T) {
	t.Parallel()

	page1 := []Module{{ID: 1, Name: "First class", Position: 1}}
	page2 := []Module{{ID: 2, Name: "Second class", Position: 2}}

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/42/modules" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("page") == "2" {
			if err := json.NewEncoder(w).Encode(page2); err != nil {
				t.Errorf("encoding page 2: %v", err)
			}
			return
		}

		next := fmt.Sprintf("%s/api/v1/courses/42/modules?per_page=50&page=2", srvURL)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		if err := json.NewEncoder(w).Encode(page1); err != nil {
			t.Errorf("encoding page 1: %v", err)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	client := NewClient(WithBaseURL(srv.URL))
	mods, err := client.ListModules(context.Background(), 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mods) != 2 {
		t.Fatalf("expected 2 modules across 2 pages, got %d", len(mods))
	}
	if mods[0].Name != "First class" || mods[1].Name != "Second class" {
		t.Errorf("modules out of order: %+v", mods)
	}
}

func TestListModules_SearchTerm(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_term"); got != "Week of September 7" {
			t.Errorf("search_term = %q, want %q", got, "Week of September 7")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id": 7, "name": "Week of September 7", "position": 3}]`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	mods, err := client.ListModules(context.Background(), 42, "Week of September 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mods) != 1 || mods[0].ID != 7 {
		t.Errorf("unexpected result: %+v", mods)
	}
}

func TestCreateModule_FormFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("module[name]"); got != "Third class" {
			t.Errorf("module[name] = %q", got)
		}
		// Position 0 means append: the field must be absent.
		if r.PostForm.Has("module[position]") {
			t.Error("module[position] should be omitted for append")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 99, "name": "Third class", "position": 3}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithToken("sekrit"))
	mod, err := client.CreateModule(context.Background(), 42, "Third class", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mod.ID != 99 {
		t.Errorf("module id = %d, want 99", mod.ID)
	}
}

func TestCreateModuleItem_FormFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("module_item[type]"); got != "ExternalUrl" {
			t.Errorf("module_item[type] = %q", got)
		}
		if got := r.PostForm.Get("module_item[external_url]"); got != "https://example.edu/syllabus" {
			t.Errorf("module_item[external_url] = %q", got)
		}
		if got := r.PostForm.Get("module_item[new_tab]"); got != "true" {
			t.Errorf("module_item[new_tab] = %q", got)
		}
		if got := r.PostForm.Get("module_item[indent]"); got != "1" {
			t.Errorf("module_item[indent] = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 5, "title": "Syllabus", "position": 1, "type": "ExternalUrl"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	item, err := client.CreateModuleItem(context.Background(), 42, 7, CreateItemParams{
		Title:       "Syllabus",
		Type:        TypeExternalURL,
		Indent:      1,
		ExternalURL: "https://example.edu/syllabus",
		NewTab:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 5 {
		t.Errorf("item id = %d, want 5", item.ID)
	}
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"errors": [{"message": "Invalid access token."}]}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.ListModules(context.Background(), 42, "")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "Invalid access token") {
		t.Errorf("body excerpt missing cause: %q", apiErr.Body)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithToken("tok123"))
	if _, err := client.ListModules(context.Background(), 42, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUploadFile_ThreeStepFlow(t *testing.T) {
	t.Parallel()

	localPath := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(localPath, []byte("pdf bytes"), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/courses/42/files":
			// Step 1: upload ticket.
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parsing ticket form: %v", err)
			}
			if got := r.PostForm.Get("parent_folder_path"); got != "lecture-notes" {
				t.Errorf("parent_folder_path = %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"upload_url": %q, "upload_params": {"key": "abc"}}`, srvURL+"/upload")
		case "/upload":
			// Step 2: multipart upload; token must not be forwarded here in
			// general, and redirect handling is exercised via Location.
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parsing multipart: %v", err)
			}
			if got := r.MultipartForm.Value["key"]; len(got) != 1 || got[0] != "abc" {
				t.Errorf("ticket param key = %v", got)
			}
			w.Header().Set("Location", srvURL+"/api/v1/files/314/confirm")
			w.WriteHeader(http.StatusMovedPermanently)
		case "/api/v1/files/314/confirm":
			// Step 3: confirmation returns the file metadata.
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id": 314, "display_name": "notes.pdf"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	client := NewClient(WithBaseURL(srv.URL), WithToken("tok"))
	file, err := client.UploadFile(context.Background(), 42, localPath, "lecture-notes", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.ID != 314 || file.DisplayName != "notes.pdf" {
		t.Errorf("unexpected file: %+v", file)
	}
}

func TestPostAnnouncement_ConvertsMarkdown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/42/discussion_topics" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("is_announcement"); got != "true" {
			t.Errorf("is_announcement = %q", got)
		}
		msg := r.PostForm.Get("message")
		if !strings.Contains(msg, "<strong>due Friday</strong>") {
			t.Errorf("message not converted to HTML: %q", msg)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 1}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	err := client.PostAnnouncement(context.Background(), 42, "Homework posted", "Homework 1 is **due Friday**.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarkdownToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want string
	}{
		{"emphasis", "due **Friday**", "<strong>Friday</strong>"},
		{"heading", "# Week 3", "<h1"},
		{"autolink", "see https://example.edu/syllabus", `<a href="https://example.edu/syllabus"`},
		{"plain text", "no markup here", "no markup here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MarkdownToHTML(tt.md)
			if !strings.Contains(got, tt.want) {
				t.Errorf("MarkdownToHTML(%q) = %q, want it to contain %q", tt.md, got, tt.want)
			}
		})
	}
}

func TestUploadFile_TicketFailure(t *testing.T) {
	t.Parallel()

	localPath := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(localPath, []byte("pdf bytes"), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithToken("tok"))
	_, err := client.UploadFile(context.Background(), 42, localPath, "", "")
	if err == nil {
		t.Fatal("expected an error when the ticket request fails")
	}
	if !errors.Is(err, ErrUploadFailed) {
		t.Errorf("err = %v, want it to wrap ErrUploadFailed", err)
	}
}

func TestNextPageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{`<https://c.example.edu/x?page=2>; rel="next", <https://c.example.edu/x?page=9>; rel="last"`, "https://c.example.edu/x?page=2"},
		{`<https://c.example.edu/x?page=9>; rel="last"`, ""},
	}

	for _, tt := range tests {
		if got := nextPageURL(tt.header); got != tt.want {
			t.Errorf("nextPageURL(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
