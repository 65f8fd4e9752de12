package types

// Record is one flagged member in the audit trail.
type Record struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	CreatedAt   string   `json:"created_at"`
	JoinedAt    string   `json:"joined_at"`
	HasAvatar   bool     `json:"has_avatar"`
	CohortKey   string   `json:"cohort_key,omitempty"`
	Signals     []string `json:"signals"`
	Reasons     []string `json:"reasons"`
}

// Document is the audit trail written for one scan.
type Document struct {
	GuildID   string    `json:"guild_id"`
	ScannedAt string    `json:"scanned_at"`
	Grouping  string    `json:"grouping"`
	Total     int       `json:"total"`
	Cohorts   int       `json:"cohorts"`
	Members   []*Record `json:"members"`
}
