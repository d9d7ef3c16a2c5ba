package domain

// VirtualImpression is a request-scoped correlation record binding one
// served ad to its request context. It lives only in a time-expiring
// store (30 seconds) and is read at most once by the click/impression
// confirmation consumers; expiry destroys it, nothing deletes it
// explicitly.
type VirtualImpression struct {
	Token      string `json:"token"`
	CampaignID int64  `json:"campaign_id"`
	PropertyID int64  `json:"property_id"`
	IPAddress  string `json:"ip_address"`
}
