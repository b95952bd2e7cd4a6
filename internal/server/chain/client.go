// Package chain reads certificate objects from a Sui fullnode over JSON-RPC.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/logging"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/sethvargo/go-retry"
)

const (
	methodGetOwnedObjects = "suix_getOwnedObjects"
	pageSize              = 50
	maxPages              = 20
)

var errNotIndexed = errors.New("object not yet indexed")

const defaultBackoff = 500 * time.Millisecond

// Client lists objects owned by a wallet and keeps those whose type
// contains objectType.
type Client struct {
	url        string
	objectType string
	attempts   int
	backoff    time.Duration
	http       *http.Client
	logger     logging.Logger
	nextID     atomic.Int64
}

func NewClient(url, objectType string, attempts int, backoff time.Duration, logger logging.Logger) *Client {
	if attempts < 1 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &Client{
		url:        url,
		objectType: objectType,
		attempts:   attempts,
		backoff:    backoff,
		http:       &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With("module", "chain"),
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type ownedObjectsPage struct {
	Data []struct {
		Data *struct {
			ObjectID string `json:"objectId"`
			Version  string `json:"version"`
			Digest   string `json:"digest"`
			Type     string `json:"type"`
		} `json:"data"`
	} `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type rpcResponse struct {
	Result *ownedObjectsPage `json:"result"`
	Error  *rpcError         `json:"error"`
}

// OwnedCertificates returns every certificate object currently held by owner.
func (c *Client) OwnedCertificates(ctx context.Context, owner string) ([]models.OwnedObject, error) {
	result := make([]models.OwnedObject, 0)
	var cursor *string

	for page := 0; page < maxPages; page++ {
		p, err := c.ownedObjects(ctx, owner, cursor)
		if err != nil {
			return nil, err
		}
		for _, item := range p.Data {
			if item.Data == nil || !strings.Contains(item.Data.Type, c.objectType) {
				continue
			}
			result = append(result, models.OwnedObject{
				ObjectID: item.Data.ObjectID,
				Version:  item.Data.Version,
				Digest:   item.Data.Digest,
				Type:     item.Data.Type,
			})
		}
		if !p.HasNextPage || p.NextCursor == nil {
			return result, nil
		}
		cursor = p.NextCursor
	}

	c.logger.Warn(ctx, "owned object listing truncated", "owner", owner, "pages", maxPages)
	return result, nil
}

// WaitForObject polls the owner's objects with exponential backoff until
// objectID shows up. It returns common.ErrorNotFound once the configured
// attempts are spent.
func (c *Client) WaitForObject(ctx context.Context, owner, objectID string) (*models.OwnedObject, error) {
	var found *models.OwnedObject

	b := retry.WithMaxRetries(uint64(c.attempts-1), retry.NewExponential(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		objects, err := c.OwnedCertificates(ctx, owner)
		if err != nil {
			c.logger.Debug(ctx, "owned objects lookup failed", "owner", owner, "error", err)
			return retry.RetryableError(err)
		}
		for i := range objects {
			if objects[i].ObjectID == objectID {
				found = &objects[i]
				return nil
			}
		}
		return retry.RetryableError(errNotIndexed)
	})

	if errors.Is(err, errNotIndexed) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (c *Client) ownedObjects(ctx context.Context, owner string, cursor *string) (*ownedObjectsPage, error) {
	query := map[string]any{
		"options": map[string]bool{"showType": true},
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  methodGetOwnedObjects,
		Params:  []any{owner, query, cursor, pageSize},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fullnode returned %d", resp.StatusCode)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}
	if out.Error != nil {
		return nil, out.Error
	}
	if out.Result == nil {
		return nil, errors.New("rpc response has no result")
	}
	return out.Result, nil
}
