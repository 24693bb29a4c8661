package pipeline_test

import (
	"errors"
	"testing"

	"github.com/agentia/vendormail/internal/pipeline"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		current pipeline.StageID
		state   pipeline.State
		want    pipeline.StageID
	}{
		{
			name:    "authorized sender proceeds to context loading",
			current: pipeline.StageVerifyIdentity,
			state:   pipeline.State{Authorized: true},
			want:    pipeline.StageLoadContext,
		},
		{
			name:    "unauthorized sender routes to rejection",
			current: pipeline.StageVerifyIdentity,
			state:   pipeline.State{Authorized: false},
			want:    pipeline.StageDraftRejection,
		},
		{
			name:    "context loading always proceeds to classification",
			current: pipeline.StageLoadContext,
			state:   pipeline.State{Authorized: true},
			want:    pipeline.StageClassifyIntent,
		},
		{
			name:    "status intent routes to status lookup",
			current: pipeline.StageClassifyIntent,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentStatus},
			want:    pipeline.StageExecuteStatusLookup,
		},
		{
			name:    "update intent routes to update executor",
			current: pipeline.StageClassifyIntent,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentUpdate},
			want:    pipeline.StageExecuteUpdate,
		},
		{
			name:    "policy intent routes to knowledge retrieval",
			current: pipeline.StageClassifyIntent,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentPolicy},
			want:    pipeline.StageExecuteKnowledgeRetrieval,
		},
		{
			name:    "unrelated intent bypasses all executors",
			current: pipeline.StageClassifyIntent,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentUnrelated},
			want:    pipeline.StageDraftReply,
		},
		{
			name:    "status executor converges on drafter",
			current: pipeline.StageExecuteStatusLookup,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentStatus},
			want:    pipeline.StageDraftReply,
		},
		{
			name:    "update executor converges on drafter",
			current: pipeline.StageExecuteUpdate,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentUpdate},
			want:    pipeline.StageDraftReply,
		},
		{
			name:    "retrieval executor converges on drafter",
			current: pipeline.StageExecuteKnowledgeRetrieval,
			state:   pipeline.State{Authorized: true, Intent: pipeline.IntentPolicy},
			want:    pipeline.StageDraftReply,
		},
		{
			name:    "drafter proceeds to persistence",
			current: pipeline.StageDraftReply,
			state:   pipeline.State{Authorized: true, Reply: "drafted"},
			want:    pipeline.StagePersistInteraction,
		},
		{
			name:    "rejection proceeds to persistence",
			current: pipeline.StageDraftRejection,
			state:   pipeline.State{Reply: "rejected"},
			want:    pipeline.StagePersistInteraction,
		},
		{
			name:    "failure short-circuits to persistence",
			current: pipeline.StageDraftReply,
			state:   pipeline.State{Authorized: true, Failure: errors.New("model unavailable")},
			want:    pipeline.StagePersistInteraction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pipeline.Next(tt.current, tt.state)
			if got != tt.want {
				t.Errorf("Next(%v) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		raw    string
		want   pipeline.Intent
		member bool
	}{
		{"STATUS", pipeline.IntentStatus, true},
		{"update", pipeline.IntentUpdate, true},
		{"  Policy  ", pipeline.IntentPolicy, true},
		{"UNRELATED", pipeline.IntentUnrelated, true},
		{"BANANA", pipeline.IntentUnrelated, false},
		{"", pipeline.IntentUnrelated, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, member := pipeline.ParseIntent(tt.raw)
			if got != tt.want || member != tt.member {
				t.Errorf("ParseIntent(%q) = (%v, %v), want (%v, %v)",
					tt.raw, got, member, tt.want, tt.member)
			}
		})
	}
}
