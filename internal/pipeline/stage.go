package pipeline

// StageID identifies one stage of the workflow. The set is closed; the
// router and orchestrator switch over it exhaustively.
type StageID int

const (
	StageVerifyIdentity StageID = iota
	StageLoadContext
	StageClassifyIntent
	StageExecuteStatusLookup
	StageExecuteUpdate
	StageExecuteKnowledgeRetrieval
	StageDraftReply
	StageDraftRejection
	StagePersistInteraction
)

func (s StageID) String() string {
	switch s {
	case StageVerifyIdentity:
		return "verify_identity"
	case StageLoadContext:
		return "load_context"
	case StageClassifyIntent:
		return "classify_intent"
	case StageExecuteStatusLookup:
		return "execute_status_lookup"
	case StageExecuteUpdate:
		return "execute_update"
	case StageExecuteKnowledgeRetrieval:
		return "execute_knowledge_retrieval"
	case StageDraftReply:
		return "draft_reply"
	case StageDraftRejection:
		return "draft_rejection"
	case StagePersistInteraction:
		return "persist_interaction"
	default:
		return "unknown"
	}
}
