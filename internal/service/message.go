package service

import (
	"fmt"
	"time"

	"github.com/samims/pipenotify/internal/model"
)

const (
	timestampLayout    = "2006-01-02 15:04:05 UTC"
	consoleURLTemplate = "https://console.aws.amazon.com/codesuite/codepipeline/pipelines/%s/view"
)

// ApprovalSubject is the notification subject for a pipeline awaiting approval.
func ApprovalSubject(pipelineName string) string {
	return fmt.Sprintf("Pipeline Approval Required: %s", pipelineName)
}

// ConsoleURL links to the pipeline view in the AWS console.
func ConsoleURL(pipelineName string) string {
	return fmt.Sprintf(consoleURLTemplate, pipelineName)
}

// ApprovalMessage renders the approval notification body. now is converted to UTC.
func ApprovalMessage(detail model.PipelineEventDetail, stageName string, now time.Time) string {
	return fmt.Sprintf(`🚨 Pipeline Approval Required

Pipeline: %s
Execution ID: %s
Stage: %s
Status: %s
Time: %s

Please review and approve the deployment in the AWS Console:
%s

This is an automated notification from the CI/CD pipeline.
`,
		detail.Pipeline,
		detail.ExecutionID,
		stageName,
		detail.State,
		now.UTC().Format(timestampLayout),
		ConsoleURL(detail.Pipeline),
	)
}
