package mocks

import "github.com/ersonp/adledger/internal/domain/ports"

var (
	_ ports.Ledger   = (*Ledger)(nil)
	_ ports.AlertLog = (*AlertLog)(nil)
	_ ports.Mutator  = (*Mutator)(nil)
)
