package shared

// Asynq task types. Naming convention: "<domain>:<action>".
const (
	TypeAutoReorderSweep = "reorder:sweep"
	TypeWarmSnapshot     = "inventory:warm_snapshot"
)

// Queue names, registered with the worker server in priority order.
const (
	QueueReorder   = "reorder"
	QueueInventory = "inventory"
)

// Cache key prefixes. Invalidation always targets one of these namespaces.
const (
	CacheKeyItems  = "inventory:items:"   // + tenant ID
	CacheKeyRules  = "reorder:rules:"     // + tenant ID
	CacheKeyOrders = "purchasing:orders:" // + tenant ID
)

// SweepPayload is the payload for the scheduled auto-reorder sweep task.
// An empty TenantID means "all tenants with enabled rules". Window buckets
// the idempotency key; when empty the handler derives it from the clock.
type SweepPayload struct {
	TenantID string `json:"tenant_id,omitempty"`
	Window   string `json:"window,omitempty"`
}

// WarmSnapshotPayload is the payload for the snapshot warmer task.
type WarmSnapshotPayload struct {
	TenantID string `json:"tenant_id,omitempty"`
}
