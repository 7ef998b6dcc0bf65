package handlechatmessage

import (
	"context"
	"fmt"
	"time"

	"payroll-assistant/internal/assistant/chat"
	"payroll-assistant/internal/common/config"
	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/common/logger"
	"payroll-assistant/internal/common/metrics"
	"payroll-assistant/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

const TaskType = "handle-chat-message"

// Assistant answers a message and reports how it was classified.
type Assistant interface {
	Handle(ctx context.Context, agentID int64, text string) chat.Reply
}

type Handler struct {
	config       *Config
	assistant    Assistant
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
	jobWorker    worker.JobWorker
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Assistant    Assistant
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Assistant == nil {
		return nil, fmt.Errorf("%s: assistant is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       workerConfig,
		assistant:    opts.Assistant,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute never fails for a valid input; store problems are already folded
// into the reply text by the assistant.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidChatMessageError("input cannot be nil")
	}
	reply := h.assistant.Handle(ctx, input.AgentID, input.Message)
	return &Output{
		Response:   reply.Text,
		Intent:     reply.Intent.String(),
		Outcome:    reply.Outcome,
		ReasonCode: string(apperrors.CodeOf(reply.Reason)),
	}, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, apperrors.NewInvalidChatMessageError(fmt.Sprintf("parse variables: %v", err))
	}
	if err := validation.ValidateChatMessage(validation.ChatJobSchema, variables); err != nil {
		return nil, err
	}

	agentID, _ := variables["agentId"].(float64)
	message, _ := variables["message"].(string)
	return &Input{AgentID: int64(agentID), Message: message}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
		return
	}
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":  job.GetKey(),
		"intent":  output.Intent,
		"outcome": output.Outcome,
	})
}

// Register opens the job worker on client. A disabled worker is a no-op.
func (h *Handler) Register(client zbc.Client) {
	if !h.config.Enabled {
		h.logger.Info("worker is disabled, skipping registration", nil)
		return
	}

	h.jobWorker = client.NewJobWorker().
		JobType(TaskType).
		Handler(h.Handle).
		MaxJobsActive(h.config.MaxJobsActive).
		Timeout(h.config.Timeout).
		Name(fmt.Sprintf("%s-worker", TaskType)).
		Open()

	h.logger.Info("worker registered", map[string]interface{}{
		"maxJobsActive": h.config.MaxJobsActive,
		"timeout":       h.config.Timeout.String(),
	})
}

func (h *Handler) Close() {
	if h.jobWorker != nil {
		h.jobWorker.Close()
		h.jobWorker.AwaitClose()
	}
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}
