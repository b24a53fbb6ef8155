// Package cmcc implements store.DirectoryStore against the China Mobile
// personal cloud drive (139 / mcloud) HTTP API.
package cmcc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/store"
)

const (
	baseURL     = "https://personal-kd-njs.yun.139.com"
	pageSize    = 100
	maxPages    = 100
	taskPollMax = 30
)

type Config struct {
	Authorization  string
	Cookie         string
	AccountEncrypt string            // optional; extracted from cookie when empty
	ExtraHeaders   map[string]string // e.g. x-yun-client-info
}

type Client struct {
	cfg     Config
	account string
	http    *http.Client
}

var accountCookieRx = regexp.MustCompile(`ORCHES-I-ACCOUNT-ENCRYPT=([^;]+)`)

// NewClient builds a drive client. Returns store.ErrNotConfigured when
// the authorization header or cookie is missing, so the failure is
// detected before any API call is attempted.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Authorization == "" || cfg.Cookie == "" {
		return nil, store.ErrNotConfigured
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
	c.initAccount()
	return c, nil
}

func (c *Client) initAccount() {
	enc := c.cfg.AccountEncrypt
	if enc == "" {
		if m := accountCookieRx.FindStringSubmatch(c.cfg.Cookie); m != nil {
			enc = m[1]
		}
	}
	if enc == "" {
		return
	}
	if strings.Contains(enc, "%") {
		if dec, err := url.QueryUnescape(enc); err == nil {
			enc = dec
		}
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		log.Printf("CMCC: could not decode account cookie: %v", err)
		return
	}
	c.account = string(raw)
}

// ──────────────────── Request Envelope ────────────────────

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (r *apiResponse) ok() bool { return r.Code == "0000" }

type commonAccountInfo struct {
	Account     string `json:"account"`
	AccountType int    `json:"accountType"`
}

func (c *Client) accountInfo() commonAccountInfo {
	return commonAccountInfo{Account: c.account, AccountType: 1}
}

func (c *Client) post(ctx context.Context, path string, payload, signPayload any) (*apiResponse, error) {
	body, err := compactJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	timeStr := time.Now().UTC().Format("2006-01-02 15:04:05")
	randomStr := randomString(16)
	sign, err := computeSign(timeStr, randomStr, signPayload)
	if err != nil {
		return nil, fmt.Errorf("compute sign: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Authorization", c.cfg.Authorization)
	req.Header.Set("Cookie", c.cfg.Cookie)
	req.Header.Set("Mcloud-Sign", timeStr+","+randomStr+","+sign)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36")
	for k, v := range c.cfg.ExtraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CMCC %s: HTTP %d", path, resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !out.ok() {
		log.Printf("CMCC: %s returned code=%s message=%q", path, out.Code, out.Message)
	}
	return &out, nil
}

// ──────────────────── Listing ────────────────────

// listData tolerates the three key names the backend has been seen to
// use for the entry array, flattening the quirk before it reaches the
// core.
type listData struct {
	Items          []listItem `json:"items"`
	List           []listItem `json:"list"`
	Result         []listItem `json:"result"`
	PageCursor     string     `json:"pageCursor"`
	NextPageCursor string     `json:"nextPageCursor"`
}

func (d *listData) entries() []listItem {
	switch {
	case d.Items != nil:
		return d.Items
	case d.List != nil:
		return d.List
	default:
		return d.Result
	}
}

func (d *listData) cursor() string {
	if d.PageCursor != "" {
		return d.PageCursor
	}
	return d.NextPageCursor
}

type listItem struct {
	FileID       string          `json:"fileId"`
	ParentFileID string          `json:"parentFileId"`
	Name         string          `json:"name"`
	Type         json.RawMessage `json:"type"`
	Size         json.Number     `json:"size"`
	UpdateTime   string          `json:"updateTime"`
}

func (it *listItem) isDir() bool {
	t := strings.Trim(string(it.Type), `"`)
	return t == "1" || t == "folder"
}

func (c *Client) ListDir(ctx context.Context, folderID string) ([]models.DirEntry, error) {
	var all []models.DirEntry
	cursor := ""

	for page := 0; page < maxPages; page++ {
		payload := map[string]any{
			"pageInfo":                map[string]any{"pageSize": pageSize, "pageCursor": nullable(cursor)},
			"orderBy":                 "updated_at",
			"orderDirection":          "DESC",
			"parentFileId":            folderID,
			"imageThumbnailStyleList": []string{"Small", "Large"},
		}
		signPayload := map[string]any{
			"commonAccountInfo": c.accountInfo(),
			"catalogID":         folderID,
			"catalogSortType":   0,
			"contentSortType":   0,
			"endNumber":         pageSize,
			"filterType":        0,
			"sortDirection":     1,
			"startNumber":       startNumber(cursor),
		}

		resp, err := c.post(ctx, "/hcy/file/list", payload, signPayload)
		if err != nil {
			return nil, &store.OperationError{Op: "list", ID: folderID, Err: err}
		}
		if !resp.ok() {
			return nil, &store.OperationError{Op: "list", ID: folderID,
				Err: fmt.Errorf("code=%s message=%q", resp.Code, resp.Message)}
		}

		var data listData
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, &store.OperationError{Op: "list", ID: folderID, Err: err}
		}

		for _, it := range data.entries() {
			size, _ := it.Size.Int64()
			all = append(all, models.DirEntry{
				ID:        it.FileID,
				ParentID:  it.ParentFileID,
				Name:      it.Name,
				IsDir:     it.isDir(),
				Size:      size,
				UpdatedAt: it.UpdateTime,
			})
		}

		next := data.cursor()
		if next == "" || next == cursor {
			break
		}
		cursor = next
	}

	return all, nil
}

// startNumber mirrors the backend's odd cursor contract: the first page
// sends the literal 1, later pages echo the cursor string.
func startNumber(cursor string) any {
	if cursor == "" {
		return 1
	}
	return cursor
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ──────────────────── Mutations ────────────────────

func (c *Client) Rename(ctx context.Context, id, newName string) error {
	payload := map[string]any{"fileId": id, "name": newName, "description": ""}
	signPayload := map[string]any{
		"commonAccountInfo": c.accountInfo(),
		"contentID":         id,
		"contentName":       newName,
	}
	resp, err := c.post(ctx, "/hcy/file/update", payload, signPayload)
	if err != nil {
		return &store.OperationError{Op: "rename", ID: id, Err: err}
	}
	if !resp.ok() {
		return &store.OperationError{Op: "rename", ID: id,
			Err: fmt.Errorf("code=%s message=%q", resp.Code, resp.Message)}
	}
	return nil
}

func (c *Client) Mkdir(ctx context.Context, parentID, name string) (string, error) {
	// The backend force-renames on collision, so check for an existing
	// directory first to keep mkdir idempotent.
	existing, err := c.ListDir(ctx, parentID)
	if err != nil {
		return "", err
	}
	for _, e := range existing {
		if e.IsDir && e.Name == name {
			return e.ID, nil
		}
	}

	payload := map[string]any{
		"parentFileId":   parentID,
		"name":           name,
		"description":    "",
		"type":           "folder",
		"fileRenameMode": "force_rename",
	}
	resp, err := c.post(ctx, "/hcy/file/create", payload, nil)
	if err != nil {
		return "", &store.OperationError{Op: "mkdir", ID: parentID, Err: err}
	}
	if !resp.ok() {
		return "", &store.OperationError{Op: "mkdir", ID: parentID,
			Err: fmt.Errorf("code=%s message=%q", resp.Code, resp.Message)}
	}

	var data struct {
		FileID string `json:"fileId"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", &store.OperationError{Op: "mkdir", ID: parentID, Err: err}
	}
	return data.FileID, nil
}

func (c *Client) Move(ctx context.Context, ids []string, toParentID string) error {
	if len(ids) == 0 {
		return nil
	}
	payload := map[string]any{"fileIds": ids, "toParentFileId": toParentID}
	resp, err := c.post(ctx, "/hcy/file/batchMove", payload, nil)
	if err != nil {
		return &store.OperationError{Op: "move", ID: ids[0], Err: err}
	}
	if !resp.ok() {
		return &store.OperationError{Op: "move", ID: ids[0],
			Err: fmt.Errorf("code=%s message=%q", resp.Code, resp.Message)}
	}
	if err := c.waitForTask(ctx, resp.Data); err != nil {
		return &store.OperationError{Op: "move", ID: ids[0], Err: err}
	}
	return nil
}

func (c *Client) Remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	payload := map[string]any{"fileIds": ids}
	resp, err := c.post(ctx, "/hcy/recyclebin/batchTrash", payload, nil)
	if err != nil {
		return &store.OperationError{Op: "remove", ID: ids[0], Err: err}
	}
	if !resp.ok() {
		return &store.OperationError{Op: "remove", ID: ids[0],
			Err: fmt.Errorf("code=%s message=%q", resp.Code, resp.Message)}
	}
	if err := c.waitForTask(ctx, resp.Data); err != nil {
		return &store.OperationError{Op: "remove", ID: ids[0], Err: err}
	}
	return nil
}

// ──────────────────── Task Polling ────────────────────

// waitForTask polls an async batch operation until it reaches a
// terminal state. Operations that return no taskId complete inline.
func (c *Client) waitForTask(ctx context.Context, data json.RawMessage) error {
	var d struct {
		TaskID string `json:"taskId"`
	}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &d)
	}
	if d.TaskID == "" {
		return nil
	}

	for i := 0; i < taskPollMax; i++ {
		resp, err := c.post(ctx, "/hcy/task/get", map[string]any{"taskId": d.TaskID}, nil)
		if err != nil {
			return err
		}
		if resp.ok() {
			var td struct {
				TaskInfo struct {
					Status  json.RawMessage `json:"status"`
					Process json.RawMessage `json:"process"`
				} `json:"taskInfo"`
			}
			_ = json.Unmarshal(resp.Data, &td)
			status := strings.Trim(string(td.TaskInfo.Status), `"`)
			process := strings.Trim(string(td.TaskInfo.Process), `"`)
			if status == "1" || status == "Succeed" || process == "100" {
				return nil
			}
			if status == "2" || status == "Failed" {
				return fmt.Errorf("task %s failed", d.TaskID)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("task %s did not complete in time", d.TaskID)
}
