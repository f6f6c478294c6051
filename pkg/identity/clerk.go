package identity

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
)

const DefaultClerkAPIURL = "https://api.clerk.com/v1"

type ClerkEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type ClerkPhoneNumber struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
}

type ClerkUser struct {
	ID                    string              `json:"id"`
	FirstName             string              `json:"first_name"`
	LastName              string              `json:"last_name"`
	Username              string              `json:"username"`
	ImageURL              string              `json:"image_url"`
	PrimaryEmailAddressID string              `json:"primary_email_address_id"`
	EmailAddresses        []ClerkEmailAddress `json:"email_addresses"`
	PhoneNumbers          []ClerkPhoneNumber  `json:"phone_numbers"`
	Banned                bool                `json:"banned"`
	PublicMetadata        map[string]any      `json:"public_metadata"`
	CreatedAt             int64               `json:"created_at"`
	UpdatedAt             int64               `json:"updated_at"`
}

// PrimaryEmail falls back to the first address when no primary is flagged.
func (u *ClerkUser) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (u *ClerkUser) Role() string {
	if role, ok := u.PublicMetadata["role"].(string); ok {
		return role
	}
	return ""
}

type CreateUserParams struct {
	EmailAddress   []string       `json:"email_address"`
	PhoneNumber    []string       `json:"phone_number,omitempty"`
	Username       string         `json:"username,omitempty"`
	Password       string         `json:"password"`
	FirstName      string         `json:"first_name,omitempty"`
	LastName       string         `json:"last_name,omitempty"`
	PublicMetadata map[string]any `json:"public_metadata,omitempty"`
}

type clerkAPIError struct {
	Message     string `json:"message"`
	LongMessage string `json:"long_message"`
	Code        string `json:"code"`
}

type clerkErrorBody struct {
	Errors []clerkAPIError `json:"errors"`
}

func (b *clerkErrorBody) message() string {
	if b == nil || len(b.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(b.Errors))
	for _, e := range b.Errors {
		if e.LongMessage != "" {
			msgs = append(msgs, e.LongMessage)
		} else {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

type Provider interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*ClerkUser, error)
	ListUsers(ctx context.Context, limit, offset int) ([]ClerkUser, error)
	GetUser(ctx context.Context, userID string) (*ClerkUser, error)
	DeleteUser(ctx context.Context, userID string) error
	BanUser(ctx context.Context, userID string) (*ClerkUser, error)
	UnbanUser(ctx context.Context, userID string) (*ClerkUser, error)
}

// ClerkClient talks to the Clerk backend API with a secret key.
type ClerkClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClerkClient(baseURL, secretKey string) *ClerkClient {
	if baseURL == "" {
		baseURL = DefaultClerkAPIURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(secretKey).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &ClerkClient{
		httpClient: client,
		logger:     common.GetLoggerWith(common.LoggerNameIdentity),
	}
}

func (c *ClerkClient) request(ctx context.Context) (*resty.Request, *clerkErrorBody) {
	errBody := &clerkErrorBody{}
	return c.httpClient.R().SetContext(ctx).SetError(errBody), errBody
}

// check turns a transport failure or non-2xx response into an AppError.
func (c *ClerkClient) check(op string, resp *resty.Response, errBody *clerkErrorBody, err error) error {
	if err != nil {
		c.logger.Error("Identity provider call failed", zap.String("op", op), zap.Error(err))
		return common.NewUpstreamError(fmt.Sprintf("Error calling identity provider: %s", op), err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := errBody.message()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	c.logger.Warn("Identity provider returned error",
		zap.String("op", op),
		zap.Int("status_code", resp.StatusCode()),
		zap.String("message", msg),
	)
	if resp.StatusCode() == http.StatusNotFound {
		return common.NewNotFoundError(msg)
	}
	return common.NewUpstreamError(msg, fmt.Errorf("identity provider %s: status %d", op, resp.StatusCode()))
}

func (c *ClerkClient) CreateUser(ctx context.Context, params CreateUserParams) (*ClerkUser, error) {
	var user ClerkUser
	req, errBody := c.request(ctx)
	resp, err := req.SetBody(params).SetResult(&user).Post("/users")
	if err := c.check("create user", resp, errBody, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *ClerkClient) ListUsers(ctx context.Context, limit, offset int) ([]ClerkUser, error) {
	var users []ClerkUser
	req, errBody := c.request(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(offset))
	}
	resp, err := req.SetQueryParam("order_by", "-created_at").SetResult(&users).Get("/users")
	if err := c.check("list users", resp, errBody, err); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *ClerkClient) GetUser(ctx context.Context, userID string) (*ClerkUser, error) {
	var user ClerkUser
	req, errBody := c.request(ctx)
	resp, err := req.SetPathParam("id", userID).SetResult(&user).Get("/users/{id}")
	if err := c.check("get user", resp, errBody, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *ClerkClient) DeleteUser(ctx context.Context, userID string) error {
	req, errBody := c.request(ctx)
	resp, err := req.SetPathParam("id", userID).Delete("/users/{id}")
	return c.check("delete user", resp, errBody, err)
}

func (c *ClerkClient) BanUser(ctx context.Context, userID string) (*ClerkUser, error) {
	var user ClerkUser
	req, errBody := c.request(ctx)
	resp, err := req.SetPathParam("id", userID).SetResult(&user).Post("/users/{id}/ban")
	if err := c.check("ban user", resp, errBody, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *ClerkClient) UnbanUser(ctx context.Context, userID string) (*ClerkUser, error) {
	var user ClerkUser
	req, errBody := c.request(ctx)
	resp, err := req.SetPathParam("id", userID).SetResult(&user).Post("/users/{id}/unban")
	if err := c.check("unban user", resp, errBody, err); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ Provider = (*ClerkClient)(nil)
