package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dendrascience/slackfs/internal/logging"
	"github.com/dendrascience/slackfs/internal/metrics"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

// SlackConfig holds Slack client configuration.
type SlackConfig struct {
	Token        string
	BaseURL      string        // defaults to DefaultBaseURL
	ProxyURL     string        // optional outbound proxy
	Timeout      time.Duration // per request, defaults to 60s
	RetryMax     int           // transport retries for idempotent calls
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *zap.Logger
}

// Slack is a Client backed by the Slack Web API. Channels are collections
// and files shared in them are items.
type Slack struct {
	token   string
	baseURL string
	http    *retryablehttp.Client // listings and downloads
	once    *retryablehttp.Client // uploads, never retried
	log     *zap.Logger
}

var _ Client = (*Slack)(nil)

// NewSlack creates a Slack client.
func NewSlack(cfg SlackConfig) (*Slack, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	proxy := http.ProxyFromEnvironment
	if cfg.ProxyURL != "" {
		u, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		proxy = http.ProxyURL(u)
	}

	transport := &http.Transport{
		Proxy: proxy,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	newClient := func(retryMax int) *retryablehttp.Client {
		c := retryablehttp.NewClient()
		c.HTTPClient = &http.Client{Timeout: cfg.Timeout, Transport: transport}
		c.RetryMax = retryMax
		if cfg.RetryWaitMin > 0 {
			c.RetryWaitMin = cfg.RetryWaitMin
		}
		if cfg.RetryWaitMax > 0 {
			c.RetryWaitMax = cfg.RetryWaitMax
		}
		c.Logger = logging.NewLeveled(cfg.Logger)
		return c
	}

	return &Slack{
		token:   cfg.Token,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    newClient(cfg.RetryMax),
		once:    newClient(0),
		log:     cfg.Logger,
	}, nil
}

type slackChannel struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NameNormalized string `json:"name_normalized"`
}

type slackFile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	Created            int64  `json:"created"`
	URLPrivateDownload string `json:"url_private_download"`
}

func (f slackFile) record() ItemRecord {
	return ItemRecord{
		ID:          f.ID,
		Name:        f.Name,
		Size:        f.Size,
		Created:     time.Unix(f.Created, 0),
		DownloadURL: f.URLPrivateDownload,
	}
}

type slackResponse struct {
	OK       bool           `json:"ok"`
	Error    string         `json:"error"`
	Channels []slackChannel `json:"channels"`
	Files    []slackFile    `json:"files"`
	File     *slackFile     `json:"file"`
}

// ListCollections returns the first page of conversations.
func (s *Slack) ListCollections(ctx context.Context, pageLimit int, typeFilter string) ([]Collection, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageLimit))
	q.Set("types", typeFilter)

	var resp slackResponse
	if err := s.call(ctx, "conversations.list", q, &resp); err != nil {
		return nil, err
	}

	collections := make([]Collection, 0, len(resp.Channels))
	for _, ch := range resp.Channels {
		name := ch.NameNormalized
		if name == "" {
			name = ch.Name
		}
		collections = append(collections, Collection{ID: ch.ID, Name: name})
	}
	return collections, nil
}

// ListItems returns the first page of files shared in a channel.
func (s *Slack) ListItems(ctx context.Context, collectionID string, pageLimit int) ([]ItemRecord, error) {
	q := url.Values{}
	q.Set("channel", collectionID)
	q.Set("count", strconv.Itoa(pageLimit))

	var resp slackResponse
	if err := s.call(ctx, "files.list", q, &resp); err != nil {
		return nil, err
	}

	records := make([]ItemRecord, 0, len(resp.Files))
	for _, f := range resp.Files {
		records = append(records, f.record())
	}
	return records, nil
}

// DownloadContent fetches the raw bytes behind a private download URL.
func (s *Slack) DownloadContent(ctx context.Context, sourceURL string) (data []byte, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemoteCall("download", start, err) }()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build download request: %v", ErrTransport, err)
	}
	s.authorize(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", ErrTransport, sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download %s: status %d", ErrTransport, sourceURL, resp.StatusCode)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read download body: %v", ErrTransport, err)
	}
	metrics.RecordDownload(len(data))
	return data, nil
}

// UploadContent posts data as a new file shared into the channel.
func (s *Slack) UploadContent(ctx context.Context, collectionID, fileName string, data []byte) (rec ItemRecord, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemoteCall("files.upload", start, err) }()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("channels", collectionID); err != nil {
		return ItemRecord{}, fmt.Errorf("%w: encode upload: %v", ErrTransport, err)
	}
	if err := mw.WriteField("filename", fileName); err != nil {
		return ItemRecord{}, fmt.Errorf("%w: encode upload: %v", ErrTransport, err)
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return ItemRecord{}, fmt.Errorf("%w: encode upload: %v", ErrTransport, err)
	}
	if _, err := part.Write(data); err != nil {
		return ItemRecord{}, fmt.Errorf("%w: encode upload: %v", ErrTransport, err)
	}
	if err := mw.Close(); err != nil {
		return ItemRecord{}, fmt.Errorf("%w: encode upload: %v", ErrTransport, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/files.upload", body.Bytes())
	if err != nil {
		return ItemRecord{}, fmt.Errorf("%w: build upload request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.authorize(req)

	var resp slackResponse
	if err := s.do(s.once, req, "files.upload", &resp); err != nil {
		return ItemRecord{}, err
	}
	if resp.File == nil {
		return ItemRecord{}, fmt.Errorf("%w: files.upload: response carried no file", ErrTransport)
	}
	return resp.File.record(), nil
}

func (s *Slack) authorize(req *retryablehttp.Request) {
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// call issues a GET against an API method and decodes the envelope.
func (s *Slack) call(ctx context.Context, method string, q url.Values, out *slackResponse) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveRemoteCall(method, start, err) }()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+method+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", ErrTransport, method, err)
	}
	s.authorize(req)
	return s.do(s.http, req, method, out)
}

func (s *Slack) do(c *retryablehttp.Client, req *retryablehttp.Request, method string, out *slackResponse) error {
	s.log.Debug("slack api call",
		zap.String("method", method),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTransport, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d", ErrTransport, method, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", ErrTransport, method, err)
	}
	if !out.OK {
		return fmt.Errorf("%w: %s: %s", ErrTransport, method, out.Error)
	}
	return nil
}
