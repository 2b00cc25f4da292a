package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/config"
)

// Stage names reported on APIError, matching the four creation calls the
// submission worker drives.
const (
	StageCampaign = "campaign"
	StageAdSet    = "ad_set"
	StageCreative = "creative"
	StageAd       = "ad"
	StageAuth     = "auth"
	StageAccount  = "account"
)

// APIError carries the platform's raw error message for a failed call.
type APIError struct {
	Stage      string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	appID       string
	appSecret   string
	redirectURI string
	baseURL     string
	http        *http.Client
}

func NewClient(cfg config.FacebookConfig) *Client {
	return &Client{
		appID:       cfg.AppID,
		appSecret:   cfg.AppSecret,
		redirectURI: cfg.RedirectURI,
		baseURL:     strings.TrimRight(cfg.GraphURL, "/"),
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   *time.Time
	Scope       string `json:"scope"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AdAccountInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
}

type CampaignParams struct {
	Name      string
	Objective string
	Status    string
	Budget    float64 // lifetime budget in major currency units
}

type AdSetParams struct {
	Name             string
	DailyBudget      float64
	BillingEvent     string
	OptimizationGoal string
	Targeting        map[string]interface{}
	Status           string
}

type CreativeParams struct {
	Name      string
	StorySpec map[string]interface{}
}

type AdParams struct {
	Name       string
	AdSetID    string
	CreativeID string
	Status     string
}

// AuthURL builds the OAuth dialog URL the UI redirects to.
func (c *Client) AuthURL(state string) string {
	params := url.Values{
		"client_id":     {c.appID},
		"redirect_uri":  {c.redirectURI},
		"scope":         {"ads_management,ads_read,business_management,pages_read_engagement"},
		"response_type": {"code"},
		"state":         {state},
	}
	return "https://www.facebook.com/v18.0/dialog/oauth?" + params.Encode()
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Token, error) {
	params := url.Values{
		"client_id":     {c.appID},
		"client_secret": {c.appSecret},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
	}
	return c.tokenRequest(ctx, params)
}

// RefreshToken exchanges a long-lived token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context, accessToken string) (Token, error) {
	params := url.Values{
		"grant_type":        {"fb_exchange_token"},
		"client_id":         {c.appID},
		"client_secret":     {c.appSecret},
		"fb_exchange_token": {accessToken},
	}
	return c.tokenRequest(ctx, params)
}

func (c *Client) tokenRequest(ctx context.Context, params url.Values) (Token, error) {
	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		Scope       string `json:"scope"`
	}
	if err := c.get(ctx, StageAuth, "/oauth/access_token", params, &payload); err != nil {
		return Token{}, err
	}
	token := Token{AccessToken: payload.AccessToken, Scope: payload.Scope}
	if payload.ExpiresIn > 0 {
		expires := time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
		token.ExpiresAt = &expires
	}
	return token, nil
}

// UserInfo fetches the identity behind an access token.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (UserInfo, error) {
	params := url.Values{
		"fields":       {"id,name,email"},
		"access_token": {accessToken},
	}
	var info UserInfo
	if err := c.get(ctx, StageAuth, "/me", params, &info); err != nil {
		return UserInfo{}, err
	}
	return info, nil
}

// AdAccount returns the first ad account the token can manage.
func (c *Client) AdAccount(ctx context.Context, accessToken string) (AdAccountInfo, error) {
	params := url.Values{
		"fields":       {"id,name,account_id"},
		"access_token": {accessToken},
	}
	var payload struct {
		Data []AdAccountInfo `json:"data"`
	}
	if err := c.get(ctx, StageAccount, "/me/adaccounts", params, &payload); err != nil {
		return AdAccountInfo{}, err
	}
	if len(payload.Data) == 0 {
		return AdAccountInfo{}, &APIError{Stage: StageAccount, StatusCode: http.StatusOK, Message: "no ad accounts found"}
	}
	return payload.Data[0], nil
}

// CreateCampaign creates a campaign under the account and returns its id.
func (c *Client) CreateCampaign(ctx context.Context, accessToken, accountID string, p CampaignParams) (string, error) {
	form := url.Values{
		"name":         {p.Name},
		"objective":    {p.Objective},
		"status":       {p.Status},
		"access_token": {accessToken},
	}
	if p.Budget > 0 {
		form.Set("lifetime_budget", minorUnits(p.Budget))
	}
	return c.create(ctx, StageCampaign, accountPath(accountID, "campaigns"), form)
}

// CreateAdSet creates an ad set inside a campaign and returns its id.
func (c *Client) CreateAdSet(ctx context.Context, accessToken, accountID, campaignID string, p AdSetParams) (string, error) {
	targeting, err := json.Marshal(p.Targeting)
	if err != nil {
		return "", &APIError{Stage: StageAdSet, Message: "encode targeting: " + err.Error()}
	}
	form := url.Values{
		"name":              {p.Name},
		"campaign_id":       {campaignID},
		"daily_budget":      {minorUnits(p.DailyBudget)},
		"billing_event":     {p.BillingEvent},
		"optimization_goal": {p.OptimizationGoal},
		"targeting":         {string(targeting)},
		"status":            {p.Status},
		"access_token":      {accessToken},
	}
	return c.create(ctx, StageAdSet, accountPath(accountID, "adsets"), form)
}

// CreateAdCreative registers the creative payload and returns its id.
func (c *Client) CreateAdCreative(ctx context.Context, accessToken, accountID string, p CreativeParams) (string, error) {
	spec, err := json.Marshal(p.StorySpec)
	if err != nil {
		return "", &APIError{Stage: StageCreative, Message: "encode story spec: " + err.Error()}
	}
	form := url.Values{
		"name":              {p.Name},
		"object_story_spec": {string(spec)},
		"access_token":      {accessToken},
	}
	return c.create(ctx, StageCreative, accountPath(accountID, "adcreatives"), form)
}

// CreateAd links an ad set to a creative and returns the ad id.
func (c *Client) CreateAd(ctx context.Context, accessToken, accountID string, p AdParams) (string, error) {
	creative, err := json.Marshal(map[string]string{"creative_id": p.CreativeID})
	if err != nil {
		return "", &APIError{Stage: StageAd, Message: "encode creative ref: " + err.Error()}
	}
	form := url.Values{
		"name":         {p.Name},
		"adset_id":     {p.AdSetID},
		"creative":     {string(creative)},
		"status":       {p.Status},
		"access_token": {accessToken},
	}
	return c.create(ctx, StageAd, accountPath(accountID, "ads"), form)
}

func accountPath(accountID, resource string) string {
	return "/act_" + strings.TrimPrefix(accountID, "act_") + "/" + resource
}

// minorUnits converts a major-currency amount to the platform's integer cents.
func minorUnits(amount float64) string {
	return strconv.FormatInt(int64(amount*100), 10)
}

func (c *Client) get(ctx context.Context, stage, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &APIError{Stage: stage, Message: err.Error()}
	}
	return c.do(req, stage, out)
}

func (c *Client) create(ctx context.Context, stage, path string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &APIError{Stage: stage, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload struct {
		ID string `json:"id"`
	}
	if err := c.do(req, stage, &payload); err != nil {
		return "", err
	}
	return payload.ID, nil
}

func (c *Client) do(req *http.Request, stage string, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Stage: stage, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Stage: stage, StatusCode: resp.StatusCode, Message: err.Error()}
	}

	// The Graph API reports failures both through non-2xx statuses and an
	// error object inside a 200 body; unwrap either into the raw message.
	var probe struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Error != nil {
		return &APIError{Stage: stage, StatusCode: resp.StatusCode, Message: probe.Error.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Stage:      stage,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &APIError{Stage: stage, StatusCode: resp.StatusCode, Message: "decode response: " + err.Error()}
		}
	}
	return nil
}
