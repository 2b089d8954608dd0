package redisx

import "time"

const (
	// Whole-catalog product listing: cache:products -> JSON array
	KeyProductList = "cache:products"

	// Cache status order: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%d"
)

var (
	TTLProductList = 30 * time.Second
	TTLStatusCache = 5 * time.Minute
)
