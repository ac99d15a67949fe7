package response

// Fixed user-facing texts for the answer flow. These are part of the API
// contract with the frontend, so they live in one place.
const (
	// FallbackNoData is returned when retrieval finds nothing for the
	// owner. No generation call happens in that case.
	FallbackNoData = "I don’t have enough of your data yet to answer that. Try adding more data in your vault."

	// QuotaApology is the soft answer used when the generation provider
	// rejects for quota reasons. The request still succeeds at the
	// transport level.
	QuotaApology = "I’m getting a little too many questions right now. Please wait a moment and try again."

	// GenericFailure is the hard-failure message. Provider internals
	// stay in the details field, never here.
	GenericFailure = "Failed to process question"

	// LimitReached is returned once the conversation cap is hit.
	LimitReached = "Maximum conversation limit reached (5 questions)"
)

// QuotaRetryAfterSeconds is the retry hint attached to QuotaApology.
const QuotaRetryAfterSeconds = 40
