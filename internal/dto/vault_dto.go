package dto

// VaultSummaryResponse is the aggregated view of everything the user has
// stored, fetched across all four kinds in one call.
type VaultSummaryResponse struct {
	Notes       []NoteResponse       `json:"notes"`
	Links       []LinkResponse       `json:"links"`
	Actions     []ActionResponse     `json:"actions"`
	Attachments []AttachmentResponse `json:"attachments"`
}
