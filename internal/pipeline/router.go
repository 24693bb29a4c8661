package pipeline

// Start is the entry stage of every run.
const Start = StageVerifyIdentity

// Next selects the stage that follows current given fully merged state. The
// graph is a DAG: one conditional fan-out after identity verification, one
// four-way fan-out after classification, all executors converging on the
// drafter, both drafters converging on persistence. A recorded failure
// short-circuits the remaining business stages but never persistence.
func Next(current StageID, s State) StageID {
	if current == StagePersistInteraction {
		return StagePersistInteraction
	}

	if s.Failure != nil {
		return StagePersistInteraction
	}

	switch current {
	case StageVerifyIdentity:
		if s.Authorized {
			return StageLoadContext
		}
		return StageDraftRejection
	case StageLoadContext:
		return StageClassifyIntent
	case StageClassifyIntent:
		switch s.Intent {
		case IntentStatus:
			return StageExecuteStatusLookup
		case IntentUpdate:
			return StageExecuteUpdate
		case IntentPolicy:
			return StageExecuteKnowledgeRetrieval
		default:
			return StageDraftReply
		}
	case StageExecuteStatusLookup, StageExecuteUpdate, StageExecuteKnowledgeRetrieval:
		return StageDraftReply
	case StageDraftReply, StageDraftRejection:
		return StagePersistInteraction
	default:
		return StagePersistInteraction
	}
}
