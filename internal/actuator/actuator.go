package actuator

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

var (
	ErrLoadCertificate  = errors.New("client certificate load failed")
	ErrRequestFailed    = errors.New("actuator request failed")
	ErrUnexpectedStatus = errors.New("actuator returned unexpected status")
	ErrDecodeResponse   = errors.New("actuator response decode failed")
)

type Config struct {
	URL                string
	CertFile           string
	KeyFile            string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Client pushes calibration table changes to the field gateway over HTTPS.
type Client struct {
	url string
	hc  *http.Client
}

type patternCode struct {
	DeviceID string `json:"DeviceId"`
	Val      int    `json:"Val"`
}

type patternRequest struct {
	TiltPattarnCode []patternCode `json:"TiltPattarnCode"`
}

func New(cfg Config) (*Client, error) {
	const fn = "Actuator:New"
	tlsCfg := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}
	if cfg.CertFile != "" || cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrLoadCertificate, err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg
	return &Client{
		url: cfg.URL,
		hc:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
	}, nil
}

// SetCalibrationTable asks the gateway to switch the device at mac to the
// given table. Any non-2xx answer or unreadable acknowledgement is a failure.
func (c *Client) SetCalibrationTable(ctx context.Context, mac string, tableID int) error {
	const fn = "Actuator:SetCalibrationTable"
	body, err := json.Marshal(patternRequest{
		TiltPattarnCode: []patternCode{{DeviceID: mac, Val: tableID}},
	})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrRequestFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s:%w: %d", fn, ErrUnexpectedStatus, resp.StatusCode)
	}

	var ack map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrDecodeResponse, err)
	}
	slog.InfoContext(ctx, "Calibration table pushed", "sensor_mac", mac, "table_id", tableID, "ack", ack)
	return nil
}
