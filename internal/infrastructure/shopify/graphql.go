package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
)

const (
	// accessTokenHeader carries the Admin API token on GraphQL calls.
	accessTokenHeader = "X-Shopify-Access-Token"

	// defaultProductPageSize is the products page size per GraphQL request.
	defaultProductPageSize = 25

	// throttleBuffer is added on top of the computed budget-restore wait.
	throttleBuffer = time.Second
)

// inventoryQuery walks products -> variants -> inventory levels -> quantities.
const inventoryQuery = `
query inventory($pageSize: Int!, $cursor: String, $quantityNames: [String!]!) {
  products(first: $pageSize, after: $cursor) {
    pageInfo { hasNextPage endCursor }
    edges {
      node {
        id
        title
        vendor
        tags
        productType
        category { id name }
        collections(first: 10) { edges { node { title } } }
        variants(first: 50) {
          edges {
            node {
              id
              title
              sku
              inventoryItem {
                inventoryLevels(first: 10) {
                  edges {
                    node {
                      location { id name }
                      quantities(names: $quantityNames) { name quantity }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

// InventoryWalker crawls the GraphQL inventory graph for one store,
// flattening it to one record per (product, variant, location). It adapts
// its pace to the server-reported query cost budget.
type InventoryWalker struct {
	config     *Config
	httpClient *http.Client
	log        *zap.Logger
	pageSize   int

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewInventoryWalker creates an InventoryWalker for the given store credentials.
func NewInventoryWalker(config *Config, log *zap.Logger) (*InventoryWalker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryWalker{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		log:      log.Named("shopify.inventory"),
		pageSize: defaultProductPageSize,
		sleep:    sleepContext,
	}, nil
}

// Walk crawls every product page and returns the flattened inventory
// snapshot. A server-reported GraphQL error aborts the crawl; rows
// accumulated before the failure are returned alongside the error.
func (w *InventoryWalker) Walk(ctx context.Context) ([]*sync.InventoryRecord, error) {
	var (
		records []*sync.InventoryRecord
		cursor  *string
	)
	for {
		page, err := w.fetchPage(ctx, cursor)
		if err != nil {
			return records, err
		}

		for _, edge := range page.Data.Products.Edges {
			records = append(records, flattenProduct(&edge.Node)...)
		}
		w.log.Info("crawled inventory page",
			zap.Int("products", len(page.Data.Products.Edges)),
			zap.Int("rows", len(records)),
		)

		if !page.Data.Products.PageInfo.HasNextPage {
			break
		}
		cursor = &page.Data.Products.PageInfo.EndCursor

		if page.Extensions != nil && page.Extensions.Cost != nil {
			if delay := throttleDelay(page.Extensions.Cost, throttleBuffer); delay > 0 {
				w.log.Info("throttling inventory crawl", zap.Duration("delay", delay))
				if err := w.sleep(ctx, delay); err != nil {
					return records, err
				}
			}
		}
	}
	return records, nil
}

// fetchPage posts one GraphQL query and decodes the response. A non-empty
// errors list is returned as a GraphQLError.
func (w *InventoryWalker) fetchPage(ctx context.Context, cursor *string) (*graphQLResponse, error) {
	variables := map[string]any{
		"pageSize":      w.pageSize,
		"quantityNames": sync.QuantityNames,
	}
	if cursor != nil {
		variables["cursor"] = *cursor
	}

	payload, err := json.Marshal(graphQLRequest{Query: inventoryQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.GraphQLURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, w.config.Password)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shopify: graphql HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded graphQLResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("shopify: failed to parse graphql response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		messages := make([]string, len(decoded.Errors))
		for i, e := range decoded.Errors {
			messages[i] = e.Message
		}
		return nil, &sync.GraphQLError{Messages: messages}
	}
	if decoded.Data == nil {
		return nil, fmt.Errorf("shopify: empty graphql response")
	}
	return &decoded, nil
}

// throttleDelay computes how long to wait before the next page when the
// estimated cost of that page would exceed the remaining budget. The
// estimate is the cost the server reported for the page just fetched.
func throttleDelay(cost *costInfo, buffer time.Duration) time.Duration {
	if cost.ThrottleStatus.RestoreRate <= 0 {
		return 0
	}
	deficit := cost.RequestedQueryCost - cost.ThrottleStatus.CurrentlyAvailable
	if deficit <= 0 {
		return 0
	}
	restore := time.Duration(deficit / cost.ThrottleStatus.RestoreRate * float64(time.Second))
	return restore + buffer
}

// flattenProduct expands one product node into one record per
// (variant, location). Counters missing from the response stay zero.
func flattenProduct(product *productNode) []*sync.InventoryRecord {
	var collections []string
	for _, edge := range product.Collections.Edges {
		collections = append(collections, edge.Node.Title)
	}

	var records []*sync.InventoryRecord
	for _, variantEdge := range product.Variants.Edges {
		variant := variantEdge.Node
		for _, levelEdge := range variant.InventoryItem.InventoryLevels.Edges {
			level := levelEdge.Node
			record := &sync.InventoryRecord{
				ProductID:    product.ID,
				ProductTitle: product.Title,
				Vendor:       product.Vendor,
				Tags:         strings.Join(product.Tags, ", "),
				ProductType:  product.ProductType,
				Collections:  strings.Join(collections, ", "),
				VariantID:    variant.ID,
				VariantTitle: variant.Title,
				VariantSKU:   variant.SKU,
				LocationID:   level.Location.ID,
				LocationName: level.Location.Name,
			}
			if product.Category != nil {
				record.Category = product.Category.ID
				record.CategoryName = product.Category.Name
			}
			for _, q := range level.Quantities {
				applyQuantity(&record.Quantities, q.Name, q.Quantity)
			}
			records = append(records, record)
		}
	}
	return records
}

// applyQuantity routes one named counter into the Quantities struct.
func applyQuantity(q *sync.Quantities, name string, value int) {
	switch name {
	case "available":
		q.Available = value
	case "reserved":
		q.Reserved = value
	case "incoming":
		q.Incoming = value
	case "committed":
		q.Committed = value
	case "damaged":
		q.Damaged = value
	case "on_hand":
		q.OnHand = value
	case "quality_control":
		q.QualityControl = value
	case "safety_check":
		q.SafetyCheck = value
	}
}

// sleepContext sleeps for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
