package db

import (
	"context"
	"fmt"
	"strings"
)

const (
	defaultFaultListLimit = 50
	maxFaultListLimit     = 500
)

// FaultFilter narrows ListRecentFaults.
type FaultFilter struct {
	TranslatorID string
	// Classified filters by classification when non-nil.
	Classified *bool
	Limit      int
}

func (p *Pool) RecordFault(ctx context.Context, row *TranslationFault) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if row == nil {
		return fmt.Errorf("fault row is nil")
	}
	if err := p.gdb.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert translation fault: %w", err)
	}
	return nil
}

// ListRecentFaults returns faults newest first.
func (p *Pool) ListRecentFaults(ctx context.Context, filter FaultFilter) ([]TranslationFault, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	query := p.gdb.WithContext(ctx).Model(&TranslationFault{})
	if translatorID := strings.ToLower(strings.TrimSpace(filter.TranslatorID)); translatorID != "" {
		query = query.Where("translator_id = ?", translatorID)
	}
	if filter.Classified != nil {
		query = query.Where("classified = ?", *filter.Classified)
	}

	rows := make([]TranslationFault, 0, 16)
	err := query.
		Order("created_at DESC").
		Order("fault_id DESC").
		Limit(clampFaultLimit(filter.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query translation faults: %w", err)
	}
	return rows, nil
}

func clampFaultLimit(limit int) int {
	if limit <= 0 {
		return defaultFaultListLimit
	}
	if limit > maxFaultListLimit {
		return maxFaultListLimit
	}
	return limit
}
