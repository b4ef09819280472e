package castore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veilcam/veilcam/internal/logging"
)

// PinataStore uploads media to an IPFS pinning service and resolves CIDs
// through a public gateway.
type PinataStore struct {
	apiURL     string
	gatewayURL string
	jwt        string
	client     *http.Client
	logger     logging.Logger
}

// NewPinataStore returns a new PinataStore. The bearer token is inspected
// (without signature verification) and an expired or expiring token is
// warned about up front, since pinning failures otherwise surface only
// mid-capture.
func NewPinataStore(apiURL, gatewayURL, bearerJWT string, logger logging.Logger) *PinataStore {
	s := &PinataStore{
		apiURL:     apiURL,
		gatewayURL: gatewayURL,
		jwt:        bearerJWT,
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
	s.warnIfTokenExpiring()
	return s
}

func (s *PinataStore) warnIfTokenExpiring() {
	ctx := context.Background()
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.jwt, claims); err != nil {
		s.logger.Warn(ctx, "pinning token is not a parsable JWT", "error", err.Error())
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	switch {
	case exp.Before(time.Now()):
		s.logger.Warn(ctx, "pinning token is expired", "expired_at", exp.Format(time.RFC3339))
	case exp.Before(time.Now().Add(24 * time.Hour)):
		s.logger.Warn(ctx, "pinning token expires within a day", "expires_at", exp.Format(time.RFC3339))
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// Upload pins the content and returns its IPFS CID.
func (s *PinataStore) Upload(ctx context.Context, data []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "capture")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/pinning/pinFileToIPFS", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.jwt)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinning request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinning service returned status %d: %s", resp.StatusCode, body)
	}

	var pr pinResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("unexpected pinning response: %w", err)
	}
	if pr.IpfsHash == "" {
		return "", fmt.Errorf("pinning response carries no hash")
	}
	return pr.IpfsHash, nil
}

// Resolve returns the gateway URL of a CID.
func (s *PinataStore) Resolve(cid string) string {
	return s.gatewayURL + "/ipfs/" + cid
}
