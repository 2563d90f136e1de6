package utils

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetch a calendar feed body as text.
func FetchText(url string) (string, error) {
	client := &http.Client{Timeout: time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("FetchText: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("FetchText: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("FetchText: %w", err)
	}
	return string(body), nil
}

func HashText(text string) string {
	h := sha256.New()
	io.WriteString(h, text)
	return fmt.Sprintf("%x", h.Sum(nil))
}
