package push

// Message is a provider neutral push payload. Each sender maps it onto its own wire format.
type Message struct {
	Title    string
	Body     string
	ImageURL string
	Data     map[string]string

	// HighPriority maps to android.priority=high.
	HighPriority bool
	Android      AndroidOptions
	Apple        AppleOptions
}

type AndroidOptions struct {
	ChannelID string
	Sound     string
	Color     string // #RRGGBB
	// NotificationPriority is the FCM enum name, e.g. PRIORITY_HIGH.
	NotificationPriority string
}

type AppleOptions struct {
	Sound            string
	Badge            *int
	ContentAvailable bool
}

func Badge(n int) *int {
	return &n
}
