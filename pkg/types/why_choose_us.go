package types

// WhyChooseUsEntry is a single selling point rendered on a service page.
type WhyChooseUsEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WhyChooseUsList is stored as a JSONB column on services.
type WhyChooseUsList []WhyChooseUsEntry
