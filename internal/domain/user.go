package domain

// User is a player of the economy, keyed by the store-assigned ID.
type User struct {
	ID             int64   `json:"id"`
	DiscordID      string  `json:"discord_id"`
	JobID          int64   `json:"job_id"`
	Cash           int64   `json:"cash"`
	Energy         int64   `json:"energy"`
	HouseChannelID *int64  `json:"house_channel_id,omitempty"`
	TellThreadID   *int64  `json:"tell_thread_id,omitempty"`
	ActedAt        *string `json:"acted_at,omitempty"`
}
