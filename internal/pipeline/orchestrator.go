package pipeline

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"go.opentelemetry.io/otel/attribute"

	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/pkg/tracing"
)

// Orchestrator is the read side of the pipeline service used by the relay.
type Orchestrator interface {
	GetPipelineExecution(ctx context.Context, pipelineName, executionID string) (model.PipelineExecution, error)
	// GetPipelineState returns the pipeline's stages in orchestrator order.
	GetPipelineState(ctx context.Context, pipelineName string) ([]model.StageState, error)
}

// CodePipelineAPI is the subset of the CodePipeline SDK client in use.
type CodePipelineAPI interface {
	GetPipelineExecution(ctx context.Context, params *codepipeline.GetPipelineExecutionInput, optFns ...func(*codepipeline.Options)) (*codepipeline.GetPipelineExecutionOutput, error)
	GetPipelineState(ctx context.Context, params *codepipeline.GetPipelineStateInput, optFns ...func(*codepipeline.Options)) (*codepipeline.GetPipelineStateOutput, error)
}

type codePipelineClient struct {
	api    CodePipelineAPI
	log    *slog.Logger
	tracer *tracing.Tracer
}

// NewCodePipelineClient wraps a CodePipeline SDK client.
func NewCodePipelineClient(api CodePipelineAPI, logger *slog.Logger) Orchestrator {
	return &codePipelineClient{
		api:    api,
		log:    logger.With("layer", "pipeline", "component", "codePipelineClient"),
		tracer: tracing.Named("codepipeline-client"),
	}
}

func (c *codePipelineClient) GetPipelineExecution(ctx context.Context, pipelineName, executionID string) (model.PipelineExecution, error) {
	ctx, span := c.tracer.StartClientSpan(ctx, "GetPipelineExecution",
		attribute.String(tracing.AttrPipelineName, pipelineName),
		attribute.String(tracing.AttrPipelineExecutionID, executionID),
	)
	defer span.End()

	out, err := c.api.GetPipelineExecution(ctx, &codepipeline.GetPipelineExecutionInput{
		PipelineName:        aws.String(pipelineName),
		PipelineExecutionId: aws.String(executionID),
	})
	if err != nil {
		c.tracer.RecordError(span, err)
		return model.PipelineExecution{}, appErr.WrapCause(appErr.ErrOrchestrator, err,
			"get pipeline execution %s/%s", pipelineName, executionID)
	}

	exec := model.PipelineExecution{PipelineName: pipelineName, ExecutionID: executionID}
	if pe := out.PipelineExecution; pe != nil {
		exec.Status = string(pe.Status)
	}
	c.log.Debug("Fetched pipeline execution",
		slog.String("pipeline", pipelineName),
		slog.String("execution_id", executionID),
		slog.String("status", exec.Status))
	return exec, nil
}

func (c *codePipelineClient) GetPipelineState(ctx context.Context, pipelineName string) ([]model.StageState, error) {
	ctx, span := c.tracer.StartClientSpan(ctx, "GetPipelineState",
		attribute.String(tracing.AttrPipelineName, pipelineName),
	)
	defer span.End()

	out, err := c.api.GetPipelineState(ctx, &codepipeline.GetPipelineStateInput{
		Name: aws.String(pipelineName),
	})
	if err != nil {
		c.tracer.RecordError(span, err)
		return nil, appErr.WrapCause(appErr.ErrOrchestrator, err, "get pipeline state %s", pipelineName)
	}

	stages := make([]model.StageState, 0, len(out.StageStates))
	for _, s := range out.StageStates {
		st := model.StageState{StageName: aws.ToString(s.StageName)}
		// stages that never ran have no latest execution
		if s.LatestExecution != nil {
			st.Status = string(s.LatestExecution.Status)
		}
		stages = append(stages, st)
	}
	span.SetAttributes(attribute.Int("pipeline.stage_count", len(stages)))
	return stages, nil
}
