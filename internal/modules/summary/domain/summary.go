package domain

// UnavailableMessage is shown when the summarization capability fails or is
// not configured. Summaries are assistive; their absence never blocks
// reading.
const UnavailableMessage = "A summary is not available right now."

// MaxSourcePages bounds how much of the document is sent to the remote
// service.
const MaxSourcePages = 8
