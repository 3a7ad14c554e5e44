package constants

import "time"

// Payment-intent metadata keys. The booking payload rides on the intent so
// reconciliation can rebuild the booking from the gateway alone.
const (
	MetadataBookingDetailsKey = "bookingDetails"
	MetadataUserIDKey         = "userId"
	MetadataPropertyIDKey     = "propertyId"
)

// Gateway call budgets. A timed-out gateway call is retryable, not a
// payment failure.
const (
	GatewayCallTimeout    = 20 * time.Second
	WebhookToleranceLimit = 5 * time.Minute
)

// HTTP server timeouts.
const (
	ServerReadTimeout  = 15 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
)

// Background job scheduling.
const (
	InventoryAuditCronSpec = "0 * * * *" // hourly, on the hour
	InventoryAuditTimeout  = 5 * time.Minute
)

// Currencies Stripe treats as zero-decimal (amount already in the smallest
// unit). Everything else is multiplied by 100 at the gateway boundary.
var ZeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true,
	"xpf": true,
}
