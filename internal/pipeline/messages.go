package pipeline

// rejectionReply is returned verbatim to unverified senders. No model call
// is made on this path.
const rejectionReply = "Dear Sender,\n\n" +
	"We could not verify your email address in our Vendor Master database. " +
	"For security reasons, we cannot process your request.\n\n" +
	"Please contact support@agentia.com if you believe this is an error.\n\n" +
	"Best regards,\nAgentia Security Team"

// systemErrorReply is returned when drafting fails. The caller always
// receives a reply, never an unhandled fault.
const systemErrorReply = "Dear Sender,\n\n" +
	"We were unable to process your request due to a temporary system error. " +
	"Please try again later, or contact support@agentia.com if the problem persists.\n\n" +
	"Best regards,\nAgentia Vendor Team"
