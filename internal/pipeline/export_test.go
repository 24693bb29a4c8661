package pipeline

// Fixed replies exposed for verbatim assertions in external tests.
const (
	TestRejectionReply   = rejectionReply
	TestSystemErrorReply = systemErrorReply
)
