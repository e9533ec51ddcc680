package lifecycle

// Badge is the display metadata of a status.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var badges = map[string]Badge{
	"draft":       {"Draft", "gray"},
	"sent":        {"Sent", "blue"},
	"accepted":    {"Accepted", "green"},
	"rejected":    {"Rejected", "red"},
	"expired":     {"Expired", "orange"},
	"processing":  {"Processing", "blue"},
	"shipped":     {"Shipped", "indigo"},
	"delivered":   {"Delivered", "teal"},
	"completed":   {"Completed", "green"},
	"cancelled":   {"Cancelled", "red"},
	"pending":     {"Pending", "yellow"},
	"paid":        {"Paid", "green"},
	"overdue":     {"Overdue", "red"},
	"issued":      {"Issued", "blue"},
	"received":    {"Received", "green"},
	"dispatched":  {"Dispatched", "indigo"},
	"in_progress": {"In Progress", "blue"},
	"in_assembly": {"In Assembly", "purple"},
	"qa":          {"QA", "orange"},
	"packed":      {"Packed", "teal"},
}

// BadgeFor returns the badge of a document or job status. Unknown statuses get a gray badge
// labelled with the raw value.
func BadgeFor(status string) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return Badge{Label: status, Color: "gray"}
}
