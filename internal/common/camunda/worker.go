// internal/common/camunda/worker.go
package camunda

import (
	"payroll-assistant/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobWorker is implemented by every task handler in internal/workers.
type JobWorker interface {
	Register(client zbc.Client)
	Close()
	GetTaskType() string
	IsEnabled() bool
}

// Manager opens and closes a set of job workers against one client.
type Manager struct {
	client  zbc.Client
	workers []JobWorker
	logger  logger.Logger
}

func NewManager(client zbc.Client, log logger.Logger) *Manager {
	return &Manager{client: client, logger: log}
}

func (m *Manager) Add(w JobWorker) {
	m.workers = append(m.workers, w)
}

// Start registers every enabled worker and returns how many were opened.
func (m *Manager) Start() int {
	started := 0
	for _, w := range m.workers {
		if !w.IsEnabled() {
			m.logger.Info("worker disabled", map[string]interface{}{"taskType": w.GetTaskType()})
			continue
		}
		w.Register(m.client)
		started++
	}
	m.logger.Info("workers started", map[string]interface{}{"count": started})
	return started
}

func (m *Manager) Stop() {
	for _, w := range m.workers {
		m.logger.Info("stopping worker", map[string]interface{}{"taskType": w.GetTaskType()})
		w.Close()
	}
}
