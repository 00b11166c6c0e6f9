package moderation

// BanRequest for PUT /users/{uid}/ban. Duration is an optional opaque
// label (for example "7d"); nothing auto-expires the ban.
type BanRequest struct {
	Reason   string `json:"reason"`
	Duration string `json:"duration,omitempty"`
}

// BanResponse acknowledges a ban or unban
type BanResponse struct {
	UID     string `json:"uid"`
	Banned  bool   `json:"banned"`
	Message string `json:"message"`
}
