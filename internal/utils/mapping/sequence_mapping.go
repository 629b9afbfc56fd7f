package mapping

import (
	"github.com/contazen/erp_ledger_core/internal/core/domain"
	"github.com/contazen/erp_ledger_core/internal/models"
)

// ToModelSequenceCounter converts a domain SequenceCounter to its row model.
func ToModelSequenceCounter(d domain.SequenceCounter) models.SequenceCounter {
	return models.SequenceCounter{
		SequenceID: d.SequenceID,
		CompanyID:  d.CompanyID,
		Series:     d.Series,
		Prefix:     d.Prefix,
		Suffix:     d.Suffix,
		Year:       d.Year,
		LastNumber: d.LastNumber,
		NextNumber: d.NextNumber,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainSequenceCounter converts a row model to a domain SequenceCounter.
func ToDomainSequenceCounter(m models.SequenceCounter) domain.SequenceCounter {
	return domain.SequenceCounter{
		SequenceID: m.SequenceID,
		CompanyID:  m.CompanyID,
		Series:     m.Series,
		Prefix:     m.Prefix,
		Suffix:     m.Suffix,
		Year:       m.Year,
		LastNumber: m.LastNumber,
		NextNumber: m.NextNumber,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
