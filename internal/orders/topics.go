package orders

import "strconv"

const TopicOrderPlaced = "order.placed"

// Partition key = order id, so downstream consumers see one order's
// events in order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
