// SPDX-License-Identifier: MPL-2.0

package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrUploadFailed is wrapped by UploadFile when the Canvas upload flow does
// not complete.
var ErrUploadFailed = errors.New("file upload failed")

type (
	// File is a file stored in a course's file area.
	File struct {
		ID          int64  `json:"id"`
		DisplayName string `json:"display_name"`
		Filename    string `json:"filename"`
		Size        int64  `json:"size"`
	}

	// uploadTicket is the first-step response of the Canvas file upload
	// flow: where to send the file and which form fields to include.
	uploadTicket struct {
		UploadURL    string            `json:"upload_url"`
		UploadParams map[string]string `json:"upload_params"`
	}
)

// ListFiles lists course files, optionally filtered remotely by a name
// substring.
func (c *Client) ListFiles(ctx context.Context, courseID int64, search string) ([]File, error) {
	reqURL := c.courseURL(courseID, "files") + "?" + listQuery(search).Encode()
	files, err := getPaged[File](ctx, c, reqURL)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return files, nil
}

// UploadFile uploads a local file into the course's file area under
// remoteDir, following the Canvas three-step upload flow: request an upload
// ticket, send the file to the returned URL, then confirm. remoteName
// overrides the stored name; empty keeps the local base name.
func (c *Client) UploadFile(ctx context.Context, courseID int64, localPath, remoteDir, remoteName string) (File, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return File{}, fmt.Errorf("uploading %s: %w", localPath, err)
	}

	name := remoteName
	if name == "" {
		name = filepath.Base(localPath)
	}

	// Step 1: request an upload ticket.
	form := url.Values{}
	form.Set("name", name)
	form.Set("size", fmt.Sprint(info.Size()))
	if remoteDir != "" {
		form.Set("parent_folder_path", remoteDir)
	}
	form.Set("on_duplicate", "overwrite")

	var ticket uploadTicket
	if err := c.postForm(ctx, c.courseURL(courseID, "files"), form, &ticket); err != nil {
		return File{}, fmt.Errorf("uploading %s: requesting upload ticket: %w: %w", localPath, ErrUploadFailed, err)
	}
	if ticket.UploadURL == "" {
		return File{}, fmt.Errorf("uploading %s: upload ticket has no upload_url: %w", localPath, ErrUploadFailed)
	}

	// Step 2: multipart POST to the ticket URL. The ticket params go first,
	// the file part last, as the Canvas API requires.
	file, err := c.postMultipart(ctx, ticket, localPath, name)
	if err != nil {
		return File{}, fmt.Errorf("uploading %s: %w: %w", localPath, ErrUploadFailed, err)
	}
	return file, nil
}

// postMultipart performs the second (and, via redirect, third) step of the
// upload flow and returns the created file's metadata. Redirects are not
// followed automatically: the confirmation URL lives on the Canvas host and
// needs the bearer token, which must never leak to the storage host.
func (c *Client) postMultipart(ctx context.Context, ticket uploadTicket, localPath, name string) (File, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return File{}, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	// Ticket params must precede the file part.
	for k, v := range ticket.UploadParams {
		if err := mw.WriteField(k, v); err != nil {
			return File{}, fmt.Errorf("building upload form: %w", err)
		}
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return File{}, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return File{}, fmt.Errorf("reading file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return File{}, fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ticket.UploadURL, &body)
	if err != nil {
		return File{}, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", c.userAgent)

	uploadClient := &http.Client{
		Transport: c.httpClient.Transport,
		Timeout:   c.httpClient.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := uploadClient.Do(req)
	if err != nil {
		return File{}, fmt.Errorf("executing upload: %w", err)
	}
	defer resp.Body.Close()

	// A redirect points at the confirmation URL on the Canvas host; fetching
	// it (authenticated) yields the file metadata.
	if loc := resp.Header.Get("Location"); resp.StatusCode >= 300 && resp.StatusCode < 400 && loc != "" {
		var file File
		if err := c.getOne(ctx, loc, &file); err != nil {
			return File{}, fmt.Errorf("confirming upload: %w", err)
		}
		return file, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck // Best-effort diagnostics.
		return File{}, &APIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodPost,
			URL:        redactURL(ticket.UploadURL),
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	var file File
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&file); err != nil {
		return File{}, fmt.Errorf("decoding upload response: %w", err)
	}
	return file, nil
}
