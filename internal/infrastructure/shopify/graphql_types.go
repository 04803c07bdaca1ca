package shopify

// GraphQL wire types for the inventory crawl. Only the fields the walker
// reads are declared.

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data       *inventoryData  `json:"data"`
	Errors     []graphQLErr    `json:"errors"`
	Extensions *extensionsInfo `json:"extensions"`
}

type graphQLErr struct {
	Message string `json:"message"`
}

type extensionsInfo struct {
	Cost *costInfo `json:"cost"`
}

type costInfo struct {
	RequestedQueryCost float64        `json:"requestedQueryCost"`
	ActualQueryCost    float64        `json:"actualQueryCost"`
	ThrottleStatus     throttleStatus `json:"throttleStatus"`
}

type throttleStatus struct {
	MaximumAvailable   float64 `json:"maximumAvailable"`
	CurrentlyAvailable float64 `json:"currentlyAvailable"`
	RestoreRate        float64 `json:"restoreRate"`
}

type inventoryData struct {
	Products productConnection `json:"products"`
}

type productConnection struct {
	PageInfo pageInfo      `json:"pageInfo"`
	Edges    []productEdge `json:"edges"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productEdge struct {
	Node productNode `json:"node"`
}

type productNode struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Vendor      string               `json:"vendor"`
	Tags        []string             `json:"tags"`
	ProductType string               `json:"productType"`
	Category    *categoryNode        `json:"category"`
	Collections collectionConnection `json:"collections"`
	Variants    variantConnection    `json:"variants"`
}

type categoryNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type collectionConnection struct {
	Edges []collectionEdge `json:"edges"`
}

type collectionEdge struct {
	Node collectionNode `json:"node"`
}

type collectionNode struct {
	Title string `json:"title"`
}

type variantConnection struct {
	Edges []variantEdge `json:"edges"`
}

type variantEdge struct {
	Node variantNode `json:"node"`
}

type variantNode struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	SKU           string            `json:"sku"`
	InventoryItem inventoryItemNode `json:"inventoryItem"`
}

type inventoryItemNode struct {
	InventoryLevels levelConnection `json:"inventoryLevels"`
}

type levelConnection struct {
	Edges []levelEdge `json:"edges"`
}

type levelEdge struct {
	Node levelNode `json:"node"`
}

type levelNode struct {
	Location   locationNode    `json:"location"`
	Quantities []quantityEntry `json:"quantities"`
}

type locationNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type quantityEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
