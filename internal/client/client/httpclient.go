package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/inmobix/internal/client/models"
	"github.com/dmitrijs2005/inmobix/internal/common"
	"github.com/dmitrijs2005/inmobix/internal/logging"
)

const maxResponseSize = 32 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     logging.Logger
	timeout time.Duration
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout bounds every request; zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// NewHTTPClient returns a client for the backend at serverURL. The /api
// prefix is appended unless serverURL already ends with it. creds may be
// nil for anonymous use.
func NewHTTPClient(serverURL string, creds Credentials, opts ...Option) *HTTPClient {
	base := strings.TrimRight(serverURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}

	c := &HTTPClient{
		baseURL: base,
		http:    &http.Client{},
		creds:   creds,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds != nil {
		if tok := c.creds.Token(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
		}
		if id := c.creds.UserID(); id != "" {
			req.Header.Set(common.UserIDHeaderName, id)
		}
		if role := c.creds.Role(); role != "" {
			req.Header.Set(common.UserRoleHeaderName, role)
		}
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	log.Debug(ctx, "request completed", "status", resp.StatusCode, "elapsed", time.Since(start))

	r := &response{status: resp.StatusCode, header: resp.Header, body: data}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiErrorFrom(r)
	}
	return r, nil
}

// call sends in as JSON (when non-nil) and decodes the response into out
// (when non-nil). Both enveloped and bare responses are accepted. The
// returned string is the envelope message, or a plain-text body.
func (c *HTTPClient) call(ctx context.Context, method, path string, query url.Values, in, out any) (string, error) {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return "", fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	r, err := c.send(ctx, method, path, query, contentType, body)
	if err != nil {
		return "", err
	}
	return decode(r, out)
}

func decode(r *response, out any) (string, error) {
	body := bytes.TrimSpace(r.body)

	if models.IsEnvelope(body) {
		var env models.Envelope[json.RawMessage]
		if err := json.Unmarshal(body, &env); err != nil {
			return "", fmt.Errorf("decode envelope: %w", err)
		}
		if !env.Success {
			return "", &APIError{StatusCode: r.status, Message: env.Message}
		}
		if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return "", fmt.Errorf("decode response data: %w", err)
			}
		}
		return env.Message, nil
	}

	if len(body) == 0 {
		return "", nil
	}
	if !json.Valid(body) {
		return string(body), nil
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
	}

	var s string
	if json.Unmarshal(body, &s) == nil {
		return s, nil
	}
	var m struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &m)
	return m.Message, nil
}

func apiErrorFrom(r *response) *APIError {
	e := &APIError{StatusCode: r.status}

	body := bytes.TrimSpace(r.body)
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	} else if len(body) > 0 {
		e.Message = string(body)
	}
	if e.Message == "" {
		e.Message = http.StatusText(r.status)
	}
	return e
}

func seg(s string) string {
	return url.PathEscape(s)
}

// auth

func (c *HTTPClient) Register(ctx context.Context, req models.UserRequest) (*models.Identity, error) {
	var out models.Identity
	msg, err := c.call(ctx, http.MethodPost, "/register", nil, req, &out)
	if err != nil {
		return nil, err
	}
	if out.Message == "" {
		out.Message = msg
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.Identity, error) {
	var out models.LoginResponse
	if _, err := c.call(ctx, http.MethodPost, "/login", nil, req, &out); err != nil {
		return nil, err
	}
	id := out.Resolve()
	if id.ID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "login response carries no user"}
	}
	return &id, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.Ack, error) {
	return c.ack(ctx, http.MethodPost, "/forgot-password", nil, req)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, req models.VerifyRequest) (string, error) {
	return c.call(ctx, http.MethodPost, "/user/verify", nil, req, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error) {
	return c.call(ctx, http.MethodPost, "/user/reset-password", nil, req, nil)
}

func (c *HTTPClient) ResendVerification(ctx context.Context, req models.ResendVerificationRequest) (*models.Identity, error) {
	var out models.Identity
	msg, err := c.call(ctx, http.MethodPost, "/user/resend-verification", nil, req, &out)
	if err != nil {
		return nil, err
	}
	if out.Message == "" {
		out.Message = msg
	}
	return &out, nil
}

func (c *HTTPClient) ack(ctx context.Context, method, path string, query url.Values, in any) (*models.Ack, error) {
	var grant models.TokenGrant
	msg, err := c.call(ctx, method, path, query, in, &grant)
	if err != nil {
		return nil, err
	}
	return &models.Ack{Message: msg, Token: grant.Token}, nil
}

// users

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.Identity, error) {
	var out models.Identity
	if _, err := c.call(ctx, http.MethodGet, "/user/"+seg(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.Identity, error) {
	var out []models.Identity
	if _, err := c.call(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) FindUserByDocument(ctx context.Context, document string) (*models.Identity, error) {
	var out models.Identity
	if _, err := c.call(ctx, http.MethodGet, "/user/documento/"+seg(document), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RequestEdit(ctx context.Context, id string) (*models.Ack, error) {
	return c.ack(ctx, http.MethodPost, "/user/request-edit/"+seg(id), nil, nil)
}

func (c *HTTPClient) ConfirmEdit(ctx context.Context, token string, req models.UserUpdateRequest) (*models.Identity, error) {
	var out models.Identity
	q := url.Values{"token": {token}}
	if _, err := c.call(ctx, http.MethodPut, "/user/confirm-edit", q, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RequestDelete(ctx context.Context, id string) (*models.Ack, error) {
	return c.ack(ctx, http.MethodPost, "/user/request-delete/"+seg(id), nil, nil)
}

func (c *HTTPClient) ConfirmDelete(ctx context.Context, token string) (string, error) {
	q := url.Values{"token": {token}}
	return c.call(ctx, http.MethodDelete, "/user/confirm-delete", q, nil, nil)
}

func (c *HTTPClient) DownloadReport(ctx context.Context, userID string, format models.ReportFormat) (*models.Report, error) {
	path := "/users/report/" + string(format)
	if userID != "" {
		path = "/user/" + seg(userID) + "/report/" + string(format)
	}

	r, err := c.send(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return nil, err
	}

	ct := r.header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		// a JSON answer here is an envelope reporting a failure
		if _, err := decode(r, nil); err != nil {
			return nil, err
		}
		return nil, &APIError{StatusCode: r.status, Message: "report response carries no file"}
	}

	return &models.Report{Data: r.body, ContentType: ct}, nil
}

// properties

func (c *HTTPClient) properties(ctx context.Context, path string, query url.Values) ([]models.Property, error) {
	var out []models.Property
	if _, err := c.call(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListProperties(ctx context.Context) ([]models.Property, error) {
	return c.properties(ctx, "/properties", nil)
}

func (c *HTTPClient) ListAvailableProperties(ctx context.Context) ([]models.Property, error) {
	return c.properties(ctx, "/properties/available", nil)
}

func (c *HTTPClient) ListPropertiesByUser(ctx context.Context, userID string) ([]models.Property, error) {
	return c.properties(ctx, "/properties/user/"+seg(userID), nil)
}

func (c *HTTPClient) PropertiesByCity(ctx context.Context, city string) ([]models.Property, error) {
	return c.properties(ctx, "/properties/city/"+seg(city), nil)
}

func (c *HTTPClient) PropertiesByType(ctx context.Context, t models.PropertyType) ([]models.Property, error) {
	return c.properties(ctx, "/properties/type/"+seg(string(t)), nil)
}

func (c *HTTPClient) PropertiesByTransaction(ctx context.Context, t models.TransactionType) ([]models.Property, error) {
	return c.properties(ctx, "/properties/transaction/"+seg(string(t)), nil)
}

func (c *HTTPClient) PropertiesByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Property, error) {
	q := url.Values{
		"minPrice": {strconv.FormatFloat(minPrice, 'f', -1, 64)},
		"maxPrice": {strconv.FormatFloat(maxPrice, 'f', -1, 64)},
	}
	return c.properties(ctx, "/properties/price-range", q)
}

func (c *HTTPClient) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	var out models.Property
	if _, err := c.call(ctx, http.MethodGet, "/properties/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProperty(ctx context.Context, req models.PropertyRequest) (*models.Property, error) {
	var out models.Property
	if _, err := c.call(ctx, http.MethodPost, "/properties", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProperty(ctx context.Context, id int64, req models.PropertyRequest) (*models.Property, error) {
	var out models.Property
	if _, err := c.call(ctx, http.MethodPut, "/properties/"+strconv.FormatInt(id, 10), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProperty(ctx context.Context, id int64) error {
	_, err := c.call(ctx, http.MethodDelete, "/properties/"+strconv.FormatInt(id, 10), nil, nil, nil)
	return err
}

func (c *HTTPClient) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	r, err := c.send(ctx, http.MethodPost, "/properties/upload", nil, w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}

	var raw json.RawMessage
	msg, err := decode(r, &raw)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 && strings.HasPrefix(msg, "http") {
		return msg, nil
	}

	var up models.ImageUpload
	if err := json.Unmarshal(raw, &up); err != nil || up.ImageURL == "" {
		var s string
		if json.Unmarshal(raw, &s) != nil || s == "" {
			return "", errors.New("upload response carries no image url")
		}
		return s, nil
	}
	return up.ImageURL, nil
}

func (c *HTTPClient) DeleteImage(ctx context.Context, imageURL string) error {
	q := url.Values{"imageUrl": {imageURL}}
	_, err := c.call(ctx, http.MethodDelete, "/properties/image", q, nil, nil)
	return err
}

var _ Client = (*HTTPClient)(nil)
