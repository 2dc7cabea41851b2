package model

import (
	"time"

	appErr "github.com/samims/pipenotify/internal/errors"
)

// PipelineEvent is the EventBridge envelope of a CodePipeline state change.
type PipelineEvent struct {
	ID         string              `json:"id,omitempty"`
	Source     string              `json:"source,omitempty"`
	DetailType string              `json:"detail-type,omitempty"`
	Account    string              `json:"account,omitempty"`
	Region     string              `json:"region,omitempty"`
	Time       time.Time           `json:"time,omitempty"`
	Detail     PipelineEventDetail `json:"detail"`
}

// PipelineEventDetail carries the fields the relay acts on.
// Pipeline, ExecutionID and State are required.
type PipelineEventDetail struct {
	Pipeline    string `json:"pipeline"`
	ExecutionID string `json:"execution-id"`
	State       string `json:"state"`
	Stage       string `json:"stage,omitempty"`
	Action      string `json:"action,omitempty"`
	Version     int64  `json:"version,omitempty"`
}

// Validate reports the first missing required field.
func (e PipelineEvent) Validate() error {
	switch {
	case e.Detail.Pipeline == "":
		return appErr.Wrap(appErr.ErrInvalidEvent, "detail.pipeline is required")
	case e.Detail.ExecutionID == "":
		return appErr.Wrap(appErr.ErrInvalidEvent, "detail.execution-id is required")
	case e.Detail.State == "":
		return appErr.Wrap(appErr.ErrInvalidEvent, "detail.state is required")
	}
	return nil
}
