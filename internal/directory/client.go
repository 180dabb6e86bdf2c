package directory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ErrUnavailable справочник не настроен
var ErrUnavailable = errors.New("directory is not configured")

// Client клиент справочника университета: группы, факультеты, преподаватели
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient создаёт клиента. Пустой baseURL даёт клиента, который отвечает ErrUnavailable.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type groupsResponse struct {
	Groups []model.Group `json:"groups"`
}

type facultiesResponse struct {
	Faculties []model.Faculty `json:"faculties"`
}

type lecturersResponse struct {
	Users []model.LecturerFull `json:"users"`
}

type bulkRequest struct {
	Codes []string `json:"codes"`
}

// GetGroup получает группу по коду, nil если не найдена
func (c *Client) GetGroup(ctx context.Context, groupCode string) (*model.Group, error) {
	var resp groupsResponse
	if err := c.call(ctx, http.MethodGet, "groups/?group_code="+url.QueryEscape(groupCode), nil, &resp); err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if len(resp.Groups) == 0 {
		return nil, nil
	}
	return &resp.Groups[0], nil
}

// Groups список групп, при непустом faculty только этого факультета
func (c *Client) Groups(ctx context.Context, faculty string) ([]model.Group, error) {
	path := "groups"
	if faculty != "" {
		path += "?faculty=" + url.QueryEscape(faculty)
	}

	var resp groupsResponse
	if err := c.call(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return resp.Groups, nil
}

// GetFaculty получает факультет по коду, nil если не найден
func (c *Client) GetFaculty(ctx context.Context, code string) (*model.Faculty, error) {
	var resp facultiesResponse
	if err := c.call(ctx, http.MethodGet, "faculties/?code="+url.QueryEscape(code), nil, &resp); err != nil {
		return nil, fmt.Errorf("get faculty: %w", err)
	}
	if len(resp.Faculties) == 0 {
		return nil, nil
	}
	return &resp.Faculties[0], nil
}

// Lecturers полный список преподавателей
func (c *Client) Lecturers(ctx context.Context) ([]model.LecturerFull, error) {
	var resp lecturersResponse
	if err := c.call(ctx, http.MethodGet, "lecturers", nil, &resp); err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	return resp.Users, nil
}

// LookupLecturers краткие записи преподавателей по кодам одним запросом
func (c *Client) LookupLecturers(ctx context.Context, codes []string) ([]model.LecturerShort, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	var resp []model.LecturerShort
	if err := c.call(ctx, http.MethodPost, "lecturers/getBulk", bulkRequest{Codes: codes}, &resp); err != nil {
		return nil, fmt.Errorf("lookup lecturers: %w", err)
	}
	return resp, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	if c.baseURL == "" {
		return ErrUnavailable
	}

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Directory request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("Directory request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)),
	)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
