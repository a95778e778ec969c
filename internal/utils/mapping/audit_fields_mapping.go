package mapping

import (
	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	"github.com/SscSPs/exchange_rates_app/internal/models"
)

// ToModelAuditFields converts domain audit fields to their column form. The
// audit columns are NOT NULL, so a record that was only ever stamped on one
// side (created, or last updated) gets the other side filled from it.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	m := models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
	if m.LastUpdatedAt.IsZero() {
		m.LastUpdatedAt = m.CreatedAt
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.LastUpdatedAt
	}
	if m.LastUpdatedBy == "" {
		m.LastUpdatedBy = m.CreatedBy
	}
	if m.CreatedBy == "" {
		m.CreatedBy = m.LastUpdatedBy
	}
	return m
}

// ToDomainAuditFields converts stored audit columns to domain audit fields.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}
