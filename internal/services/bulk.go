package services

import (
	"context"
	"errors"
)

// события, требующие индивидуальных параметров, в пакетную обработку не идут
// (трек-номер вводится на каждую заявку отдельно)
var ErrEventNotBulkable = errors.New("event requires per-item parameters")

// BulkResult - полный отчёт о пакетной операции: каждый id либо в
// succeeded, либо в failed с причиной, молчаливых потерь нет.
type BulkResult struct {
	Succeeded []string
	Failed    map[string]string
}

// Bulk - применяет один переход к набору заявок.
// Заявки обрабатываются последовательно, отказ одной не прерывает пакет.
type Bulk struct {
	Workflow *Workflow
}

// Создание сервиса
func NewBulk(workflow *Workflow) *Bulk {
	return &Bulk{Workflow: workflow}
}

func bulkable(event Event) bool {
	switch event {
	case EventApprove, EventRecordDepositPaid, EventMarkOrderReady,
		EventRecordRemainingPaid, EventReject, EventCancel:
		return true
	default:
		return false
	}
}

func (s *Bulk) Apply(ctx context.Context, event Event, ids []string) (*BulkResult, error) {
	if !bulkable(event) {
		return nil, ErrEventNotBulkable
	}

	result := &BulkResult{Failed: make(map[string]string)}
	for _, id := range ids {
		if _, err := s.Workflow.ApplyTransition(ctx, id, event, TransitionParams{}); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}
