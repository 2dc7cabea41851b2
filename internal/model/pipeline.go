package model

// StageStatusInProgress is the orchestrator's status for a running stage.
const StageStatusInProgress = "InProgress"

// StageState is one stage of a pipeline, in orchestrator order.
type StageState struct {
	StageName string `json:"stageName"`
	// Status is the latest execution status; empty when the stage never ran.
	Status string `json:"status"`
}

// PipelineExecution is the execution summary returned by the orchestrator.
type PipelineExecution struct {
	PipelineName string `json:"pipelineName"`
	ExecutionID  string `json:"pipelineExecutionId"`
	Status       string `json:"status"`
}

// FirstInProgress returns the first stage whose status is exactly InProgress.
func FirstInProgress(stages []StageState) (StageState, bool) {
	for _, s := range stages {
		if s.Status == StageStatusInProgress {
			return s, true
		}
	}
	return StageState{}, false
}
