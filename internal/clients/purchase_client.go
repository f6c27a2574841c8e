package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tiket/internal/domain"
	"tiket/internal/domain/models"
)

// PurchaseClient membaca record pembelian dari API pihak ketiga.
// Pembacaan idempotent; bisa stale sesaat setelah pembayaran, caller yang
// memutuskan refresh ulang.
type PurchaseClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func (c PurchaseClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (c PurchaseClient) GetPurchase(purchaseID, purchaseUUID string) (models.PurchaseRecord, error) {
	if strings.TrimSpace(purchaseID) == "" {
		return models.PurchaseRecord{}, domain.NotFoundError{Resource: "purchase"}
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/purchases/" + url.PathEscape(purchaseID)
	if purchaseUUID != "" {
		endpoint += "?uuid=" + url.QueryEscape(purchaseUUID)
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return models.PurchaseRecord{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return models.PurchaseRecord{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.PurchaseRecord{}, domain.NotFoundError{Resource: "purchase", Reference: purchaseID}
	case resp.StatusCode != http.StatusOK:
		return models.PurchaseRecord{}, fmt.Errorf("purchase API status %d", resp.StatusCode)
	}

	var out models.PurchaseRecord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.PurchaseRecord{}, fmt.Errorf("decode purchase %s: %w", purchaseID, err)
	}
	return out, nil
}
