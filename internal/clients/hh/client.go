package hh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.hh.ru/vacancies"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient     HTTPClient
	rateLimiter    *rate.Limiter
	baseURL        string
	requestTimeout time.Duration
	search         SearchParameters
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{}, baseURL: DefaultBaseURL}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// SetRequestTimeout bounds every single request, rate limiter wait included.
func (c *Client) SetRequestTimeout(timeout time.Duration) {
	c.requestTimeout = timeout
}

func (c *Client) SetSearchParameters(parameters SearchParameters) {
	c.search = parameters
}

// GetPagesCount asks the index without a page parameter and returns the
// number of pages it reports.
func (c *Client) GetPagesCount(ctx context.Context) (int, error) {

	if err := c.search.Validate(0); err != nil {
		return 0, fmt.Errorf("invalid parameters: %w", err)
	}

	body, status, err := c.sendRequest(ctx, http.MethodGet, c.indexURL(c.search.ToUrlParams()))
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, unexpectedStatus(status, body)
	}

	var response struct {
		Pages *int `json:"pages"`
	}
	if err = decode(body, &response); err != nil {
		return 0, err
	}
	if response.Pages == nil {
		return 0, fmt.Errorf("%w: index response has no pages field", ErrMalformedResponse)
	}

	return *response.Pages, nil
}

// GetPage returns one page of the index. hh answers pages past the end with
// 400 or 404; such a page is returned without an error and with
// HasItems() == false. Any other non-2xx status is ErrNetwork.
func (c *Client) GetPage(ctx context.Context, page int) (Page, error) {

	if err := c.search.Validate(page); err != nil {
		return Page{}, err
	}

	body, status, err := c.sendRequest(ctx, http.MethodGet, c.indexURL(c.search.ToPageUrlParams(page)))
	if err != nil {
		return Page{}, err
	}
	if status == http.StatusBadRequest || status == http.StatusNotFound {
		log.Debugf("page %d answered with status %d, treating it as past the last page", page, status)
		return Page{}, nil
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return Page{}, unexpectedStatus(status, body)
	}

	var result Page
	if err = decode(body, &result); err != nil {
		return Page{}, err
	}

	return result, nil
}

func (c *Client) GetVacancy(ctx context.Context, id string) (Vacancy, error) {

	body, status, err := c.sendRequest(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(id))
	if err != nil {
		return Vacancy{}, err
	}
	if status != http.StatusOK {
		return Vacancy{}, unexpectedStatus(status, body)
	}

	var vacancy Vacancy
	if err = decode(body, &vacancy); err != nil {
		return Vacancy{}, err
	}

	if vacancy.ID == "" {
		vacancy.ID = id
	}
	return vacancy, nil
}

func (c *Client) indexURL(params url.Values) string {
	if len(params) == 0 {
		return c.baseURL
	}
	return c.baseURL + "?" + params.Encode()
}

func (c *Client) sendRequest(ctx context.Context, method string, url string) ([]byte, int, error) {

	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: rate limiter: %v", ErrNetwork, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("User-Agent", "hh-harvester/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: error sending request to %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: error reading response body: %v", ErrNetwork, err)
	}

	return body, resp.StatusCode, nil
}

func decode(body []byte, target any) error {
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(target); err != nil {
		return fmt.Errorf("%w: error decoding JSON response: %v", ErrMalformedResponse, err)
	}
	return nil
}

func unexpectedStatus(status int, body []byte) error {
	return fmt.Errorf("%w: request failed with status %v, body: %v", ErrNetwork, status, string(body))
}
