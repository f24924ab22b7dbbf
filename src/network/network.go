package network

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// NetworkManager performs single-attempt GET requests with a bounded wait.
// Each upstream call either succeeds within the configured timeout or the
// whole invocation fails; there is no retry or backoff layer.
type NetworkManager struct {
	Config *models.MConfig
	Client *http.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	return &NetworkManager{
		Config: cfg,
		Logger: log,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request and returns the body bytes.
func (nm *NetworkManager) Get(urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqUrl.RawQuery = q.Encode()

	req, err := http.NewRequest("GET", reqUrl.String(), nil)
	if err != nil {
		return nil, err
	}

	if ua := nm.Config.Network.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := nm.Client.Do(req)
	if err != nil {
		nm.Logger.Debug("Request failed for %s: %v", reqUrl.Host, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		nm.Logger.Debug("Bad status %d from %s", resp.StatusCode, reqUrl.Host)
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
